package request

import "github.com/shopspring/decimal"

type CreateRequestRequest struct {
	Type          string           `json:"type" binding:"required,oneof=LEAVE SICK_LEAVE RESIGNATION NON_RENEWAL LOAN DOCUMENT OTHER"`
	StartDate     string           `json:"start_date"`
	EndDate       string           `json:"end_date"`
	Amount        *decimal.Decimal `json:"amount"`
	AttachmentRef *string          `json:"attachment_ref" binding:"omitempty,max=255"`
	Reason        string           `json:"reason" binding:"max=2000"`
}

type UpdateRequestRequest = CreateRequestRequest

type UpdateStatusRequest struct {
	Status  string  `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

type ListFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED CANCELLED"`
	Type   string `form:"type" binding:"omitempty,oneof=LEAVE SICK_LEAVE RESIGNATION NON_RENEWAL LOAN DOCUMENT OTHER"`
}

type RequestResponse struct {
	ID              string           `json:"id"`
	EmployeeID      string           `json:"employee_id"`
	Type            string           `json:"type"`
	Status          string           `json:"status"`
	StartDate       *string          `json:"start_date,omitempty"`
	EndDate         *string          `json:"end_date,omitempty"`
	Days            int              `json:"days,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	AttachmentRef   *string          `json:"attachment_ref,omitempty"`
	Reason          string           `json:"reason"`
	ReviewerID      *string          `json:"reviewer_id,omitempty"`
	ReviewerComment *string          `json:"reviewer_comment,omitempty"`
	ReviewedAt      *string          `json:"reviewed_at,omitempty"`
	CreatedAt       string           `json:"created_at"`
}
