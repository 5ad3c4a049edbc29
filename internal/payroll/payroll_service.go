package payroll

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-hris-payroll/internal/employeesalary"
	"go-hris-payroll/internal/events"
	"go-hris-payroll/internal/messaging/kafka"
	payrollerrors "go-hris-payroll/internal/payroll/errors"
	"go-hris-payroll/internal/shared/apperror"
	"go-hris-payroll/internal/shared/contextutil"
	"go-hris-payroll/internal/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// AttendanceCounter is the part of the attendance ledger payroll reads.
type AttendanceCounter interface {
	AttendedDayCounts(ctx context.Context, companyID string, month, year int) (map[string]int, error)
}

// SalaryProfiles is the part of the salary profile service payroll reads.
type SalaryProfiles interface {
	ProfilesByEmployee(ctx context.Context, companyID string) (map[string]employeesalary.Compensation, error)
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Preview(ctx context.Context, id tenant.Identity, req PreviewRequest) (PreviewResponse, error)
	Confirm(ctx context.Context, id tenant.Identity, req ConfirmRequest) (ConfirmResponse, error)
	History(ctx context.Context, id tenant.Identity) ([]HistoryResponse, error)
	PeriodItems(ctx context.Context, id tenant.Identity, year, month int) ([]PeriodItemResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	attendance AttendanceCounter
	salaries   SalaryProfiles
	outbox     kafka.OutboxRepository
	sf         *singleflight.Group
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	attendance AttendanceCounter,
	salaries SalaryProfiles,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		attendance: attendance,
		salaries:   salaries,
		outbox:     outbox,
		sf:         &singleflight.Group{},
		now:        time.Now,
		logger:     l,
	}
}

// Preview never writes. Every caller reads the period lock itself; only the
// input load and calculation are shared between identical concurrent
// previews, and nothing is cached afterwards.
func (s *service) Preview(ctx context.Context, id tenant.Identity, req PreviewRequest) (PreviewResponse, error) {
	workingDays, err := resolvePeriod(req.Month, req.Year, req.WorkingDays)
	if err != nil {
		return PreviewResponse{}, err
	}

	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("payroll preview requested",
		zap.String("request_id", rid),
		zap.String("company_id", id.CompanyID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.Int("working_days", workingDays),
	)

	exists, err := s.repo.CommittedRunExists(ctx, id.CompanyID, req.Year, req.Month)
	if err != nil {
		return PreviewResponse{}, err
	}
	if exists {
		return PreviewResponse{}, payrollerrors.ErrPeriodAlreadyProcessed
	}

	// The shared load must not die with whichever caller happened to start it.
	shareCtx := context.WithoutCancel(ctx)
	key := fmt.Sprintf("%s:%04d-%02d:%d", id.CompanyID, req.Year, req.Month, workingDays)
	v, err, shared := s.sf.Do(key, func() (interface{}, error) {
		return s.preview(shareCtx, id.CompanyID, req.Month, req.Year, workingDays)
	})
	if err != nil {
		return PreviewResponse{}, err
	}
	if shared {
		s.logger.Debug("payroll preview coalesced", zap.String("request_id", rid), zap.String("key", key))
	}
	return v.(PreviewResponse), nil
}

func (s *service) preview(ctx context.Context, companyID string, month, year, workingDays int) (PreviewResponse, error) {
	in, err := s.loadInputs(ctx, s.repo, companyID, month, year)
	if err != nil {
		return PreviewResponse{}, err
	}

	resp := PreviewResponse{
		Month:       month,
		Year:        year,
		WorkingDays: workingDays,
		LineItems:   make([]LineItemResponse, 0, len(in.employees)),
		TotalAmount: decimal.Zero,
	}
	for _, e := range in.employees {
		item := LineItemResponse{
			EmployeeID:     e.ID.String(),
			EmployeeNumber: e.EmployeeNumber,
			FullName:       e.FullName,
			WorkingDays:    workingDays,
			AttendedDays:   in.attended[e.ID.String()],
		}

		comp, ok := in.profiles[e.ID.String()]
		if !ok {
			item.Flags = []string{FlagMissingSalaryProfile}
			resp.LineItems = append(resp.LineItems, item)
			continue
		}

		calc := Calculate(inputFor(comp, workingDays, item.AttendedDays))
		fillLineItem(&item, comp.BaseSalary, calc)
		if calc.Payable() {
			item.Eligible = true
			resp.EligibleCount++
			resp.TotalAmount = resp.TotalAmount.Add(calc.NetSalary)
		} else {
			item.Flags = []string{FlagNonPositiveNet}
		}
		resp.LineItems = append(resp.LineItems, item)
	}

	return resp, nil
}

// Confirm commits the period. Every submitted line is recomputed from stored
// salary and attendance; client-supplied adjustments only replace working
// days, allowances and fixed deductions. An empty line_items list confirms
// every active employee with stored values.
func (s *service) Confirm(ctx context.Context, id tenant.Identity, req ConfirmRequest) (ConfirmResponse, error) {
	workingDays, err := resolvePeriod(req.Month, req.Year, req.WorkingDays)
	if err != nil {
		return ConfirmResponse{}, err
	}
	companyUUID, err := uuid.Parse(id.CompanyID)
	if err != nil {
		return ConfirmResponse{}, apperror.InvalidField("company_id")
	}
	actorUUID, err := uuid.Parse(id.EmployeeID)
	if err != nil {
		return ConfirmResponse{}, apperror.InvalidField("employee_id")
	}
	if err := validateLineItems(req.LineItems, req.Month, req.Year); err != nil {
		return ConfirmResponse{}, err
	}

	rid := contextutil.GetRequestID(ctx)
	s.logger.Info("payroll confirm requested",
		zap.String("request_id", rid),
		zap.String("company_id", id.CompanyID),
		zap.String("confirmed_by", id.EmployeeID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.Int("submitted_items", len(req.LineItems)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("payroll confirm begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ConfirmResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.CommittedRunExists(ctx, id.CompanyID, req.Year, req.Month)
	if err != nil {
		return ConfirmResponse{}, err
	}
	if exists {
		s.logger.Warn("payroll period already processed",
			zap.String("company_id", id.CompanyID),
			zap.Int("month", req.Month),
			zap.Int("year", req.Year),
		)
		return ConfirmResponse{}, payrollerrors.ErrPeriodAlreadyProcessed
	}

	in, err := s.loadInputs(ctx, qtx, id.CompanyID, req.Month, req.Year)
	if err != nil {
		return ConfirmResponse{}, err
	}

	submitted := req.LineItems
	if len(submitted) == 0 {
		submitted = make([]ConfirmLineItem, len(in.employees))
		for i, e := range in.employees {
			submitted[i] = ConfirmLineItem{EmployeeID: e.ID.String()}
		}
	}

	active := make(map[string]bool, len(in.employees))
	for _, e := range in.employees {
		active[e.ID.String()] = true
	}

	now := s.now().UTC()
	runID := uuid.New()
	paymentDate := lastDayOfMonth(req.Year, req.Month)
	total := decimal.Zero
	skipped := make([]SkippedItem, 0)
	items := make([]PayrollLineItem, 0, len(submitted))

	for _, li := range submitted {
		if !active[li.EmployeeID] {
			skipped = append(skipped, SkippedItem{EmployeeID: li.EmployeeID, Reason: FlagUnknownEmployee})
			continue
		}
		comp, ok := in.profiles[li.EmployeeID]
		if !ok {
			skipped = append(skipped, SkippedItem{EmployeeID: li.EmployeeID, Reason: FlagMissingSalaryProfile})
			continue
		}

		days := workingDays
		if li.WorkingDays != nil {
			days = *li.WorkingDays
		}
		attended := in.attended[li.EmployeeID]
		calc := Calculate(applyAdjustments(inputFor(comp, days, attended), li))
		if !calc.Payable() {
			skipped = append(skipped, SkippedItem{EmployeeID: li.EmployeeID, Reason: FlagNonPositiveNet})
			continue
		}

		items = append(items, PayrollLineItem{
			ID:               uuid.New(),
			RunID:            runID,
			CompanyID:        companyUUID,
			EmployeeID:       uuid.MustParse(li.EmployeeID),
			PeriodYear:       req.Year,
			PeriodMonth:      req.Month,
			WorkingDays:      days,
			AttendedDays:     attended,
			AbsentDays:       calc.AbsentDays,
			BasicPay:         comp.BaseSalary,
			TotalAllowances:  calc.TotalAllowances,
			AbsenceDeduction: calc.AbsenceDeduction,
			TotalDeductions:  calc.TotalDeductions,
			NetSalary:        calc.NetSalary,
			PaymentDate:      paymentDate,
			Status:           ItemStatusPending,
			CreatedAt:        now,
		})
		total = total.Add(calc.NetSalary)
	}

	if len(items) == 0 {
		return ConfirmResponse{}, payrollerrors.ErrNothingToConfirm
	}

	run := &PayrollRun{
		ID:            runID,
		CompanyID:     companyUUID,
		PeriodYear:    req.Year,
		PeriodMonth:   req.Month,
		Status:        RunStatusCommitted,
		WorkingDays:   workingDays,
		EmployeeCount: len(items),
		TotalAmount:   total,
		ConfirmedBy:   actorUUID,
		ConfirmedAt:   now,
		CreatedAt:     now,
	}
	if err := qtx.CreateRun(ctx, run); err != nil {
		s.logger.Warn("payroll run insert failed",
			zap.String("request_id", rid),
			zap.String("company_id", id.CompanyID),
			zap.Error(err),
		)
		return ConfirmResponse{}, err
	}
	if err := qtx.CreateLineItems(ctx, items); err != nil {
		s.logger.Error("payroll line items insert failed", zap.String("request_id", rid), zap.Error(err))
		return ConfirmResponse{}, err
	}

	payload := events.PayrollPeriodConfirmedEvent{
		EventType:     events.PayrollPeriodConfirmedType,
		RunID:         runID.String(),
		CompanyID:     id.CompanyID,
		Month:         req.Month,
		Year:          req.Year,
		EmployeeCount: len(items),
		TotalAmount:   total.StringFixed(2),
		ConfirmedBy:   id.EmployeeID,
		OccurredAt:    now,
	}
	event, err := kafka.NewOutboxEvent(id.CompanyID, "payroll_run", runID.String(),
		events.PayrollPeriodConfirmedType, events.PayrollPeriodTopic, payload)
	if err != nil {
		return ConfirmResponse{}, err
	}
	event.RequestID = rid
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("payroll confirm outbox persist failed", zap.String("run_id", runID.String()), zap.Error(err))
		return ConfirmResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("payroll confirm commit failed", zap.String("request_id", rid), zap.Error(err))
		return ConfirmResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("payroll period confirmed",
		zap.String("request_id", rid),
		zap.String("run_id", runID.String()),
		zap.String("company_id", id.CompanyID),
		zap.Int("employee_count", len(items)),
		zap.String("total_amount", total.StringFixed(2)),
		zap.Int("skipped", len(skipped)),
	)

	return ConfirmResponse{
		RunID:         runID.String(),
		Month:         req.Month,
		Year:          req.Year,
		EmployeeCount: len(items),
		TotalAmount:   total,
		Skipped:       skipped,
	}, nil
}

func (s *service) History(ctx context.Context, id tenant.Identity) ([]HistoryResponse, error) {
	runs, err := s.repo.FindRuns(ctx, id.CompanyID)
	if err != nil {
		return nil, err
	}

	res := make([]HistoryResponse, len(runs))
	for i, r := range runs {
		res[i] = HistoryResponse{
			Month:         r.PeriodMonth,
			Year:          r.PeriodYear,
			EmployeeCount: r.EmployeeCount,
			TotalPaid:     r.TotalAmount,
			ConfirmedAt:   r.ConfirmedAt.Format(time.RFC3339),
		}
	}
	return res, nil
}

func (s *service) PeriodItems(ctx context.Context, id tenant.Identity, year, month int) ([]PeriodItemResponse, error) {
	if _, err := resolvePeriod(month, year, nil); err != nil {
		return nil, err
	}

	exists, err := s.repo.CommittedRunExists(ctx, id.CompanyID, year, month)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, payrollerrors.ErrPeriodNotProcessed
	}

	items, err := s.repo.FindLineItems(ctx, id.CompanyID, year, month)
	if err != nil {
		return nil, err
	}

	res := make([]PeriodItemResponse, len(items))
	for i, it := range items {
		res[i] = PeriodItemResponse{
			ID:               it.ID.String(),
			EmployeeID:       it.EmployeeID.String(),
			WorkingDays:      it.WorkingDays,
			AttendedDays:     it.AttendedDays,
			AbsentDays:       it.AbsentDays,
			BasicPay:         it.BasicPay,
			TotalAllowances:  it.TotalAllowances,
			AbsenceDeduction: it.AbsenceDeduction,
			TotalDeductions:  it.TotalDeductions,
			NetSalary:        it.NetSalary,
			PaymentDate:      it.PaymentDate.Format("2006-01-02"),
			Status:           it.Status,
		}
		if it.Employee != nil {
			res[i].FullName = it.Employee.FullName
		}
	}
	return res, nil
}

type periodInputs struct {
	employees []PayrollEmployee
	profiles  map[string]employeesalary.Compensation
	attended  map[string]int
}

func (s *service) loadInputs(ctx context.Context, repo Repository, companyID string, month, year int) (periodInputs, error) {
	employees, err := repo.FindActiveEmployees(ctx, companyID)
	if err != nil {
		return periodInputs{}, err
	}
	profiles, err := s.salaries.ProfilesByEmployee(ctx, companyID)
	if err != nil {
		return periodInputs{}, err
	}
	attended, err := s.attendance.AttendedDayCounts(ctx, companyID, month, year)
	if err != nil {
		return periodInputs{}, err
	}
	return periodInputs{employees: employees, profiles: profiles, attended: attended}, nil
}

// resolvePeriod validates the period and returns the working days to use.
func resolvePeriod(month, year int, override *int) (int, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return 0, payrollerrors.ErrInvalidPeriod
	}
	if override == nil {
		return WorkingDaysInMonth(year, month), nil
	}
	if *override < 1 || *override > daysInMonth(year, month) {
		return 0, payrollerrors.ErrInvalidWorkingDays
	}
	return *override, nil
}

func validateLineItems(items []ConfirmLineItem, month, year int) error {
	seen := make(map[string]bool, len(items))
	for _, li := range items {
		if _, err := uuid.Parse(li.EmployeeID); err != nil {
			return payrollerrors.ErrInvalidEmployeeID
		}
		if seen[li.EmployeeID] {
			return payrollerrors.ErrDuplicateLineItem
		}
		seen[li.EmployeeID] = true

		if li.WorkingDays != nil {
			if _, err := resolvePeriod(month, year, li.WorkingDays); err != nil {
				return err
			}
		}
		for _, v := range []*decimal.Decimal{li.HousingAllowance, li.TransportAllowance, li.OtherAllowances, li.Deductions} {
			if v != nil && v.IsNegative() {
				return payrollerrors.ErrInvalidMoneyValue
			}
		}
	}
	return nil
}

func inputFor(comp employeesalary.Compensation, workingDays, attended int) CalculationInput {
	return CalculationInput{
		BaseSalary:         comp.BaseSalary,
		HousingAllowance:   comp.HousingAllowance,
		TransportAllowance: comp.TransportAllowance,
		OtherAllowances:    comp.OtherAllowances,
		FixedDeductions:    comp.Deductions,
		WorkingDays:        workingDays,
		AttendedDays:       attended,
	}
}

func applyAdjustments(in CalculationInput, li ConfirmLineItem) CalculationInput {
	if li.HousingAllowance != nil {
		in.HousingAllowance = *li.HousingAllowance
	}
	if li.TransportAllowance != nil {
		in.TransportAllowance = *li.TransportAllowance
	}
	if li.OtherAllowances != nil {
		in.OtherAllowances = *li.OtherAllowances
	}
	if li.Deductions != nil {
		in.FixedDeductions = *li.Deductions
	}
	return in
}

func fillLineItem(item *LineItemResponse, base decimal.Decimal, calc Calculation) {
	item.AbsentDays = calc.AbsentDays
	item.BasicPay = base
	item.TotalAllowances = calc.TotalAllowances
	item.AbsenceDeduction = calc.AbsenceDeduction
	item.TotalDeductions = calc.TotalDeductions
	item.NetSalary = calc.NetSalary
}
