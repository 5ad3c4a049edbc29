package tenant

import (
	"errors"
	"fmt"
	"strings"

	tenanterrors "go-hris-payroll/internal/tenant/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the signed payload the resolver accepts.
type Claims struct {
	EmployeeID string `json:"employee_id"`
	CompanyID  string `json:"company_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

type Resolver interface {
	Resolve(credential string) (Identity, error)
}

type jwtResolver struct {
	secret []byte
	parser *jwt.Parser
}

func NewResolver(secret string) Resolver {
	return &jwtResolver{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Resolve verifies credential and returns the identity it carries.
// Missing or structurally broken credentials are ErrUnauthenticated; a well
// formed token that is expired or fails signature checks is ErrForbidden.
func (r *jwtResolver) Resolve(credential string) (Identity, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return Identity{}, tenanterrors.ErrUnauthenticated
	}

	var claims Claims
	token, err := r.parser.ParseWithClaims(credential, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return Identity{}, tenanterrors.ErrUnauthenticated
		}
		return Identity{}, tenanterrors.ErrForbidden
	}
	if !token.Valid {
		return Identity{}, tenanterrors.ErrForbidden
	}

	if _, err := uuid.Parse(claims.CompanyID); err != nil {
		return Identity{}, tenanterrors.ErrUnauthenticated
	}
	if _, err := uuid.Parse(claims.EmployeeID); err != nil {
		return Identity{}, tenanterrors.ErrUnauthenticated
	}
	if claims.Role == "" {
		return Identity{}, tenanterrors.ErrUnauthenticated
	}

	return Identity{
		CompanyID:  claims.CompanyID,
		EmployeeID: claims.EmployeeID,
		Role:       strings.ToUpper(claims.Role),
	}, nil
}
