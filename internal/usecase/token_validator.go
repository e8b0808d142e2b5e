package usecase

import (
	"rental-booking/internal/domain/user"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrUntrustedCaller = errs.New("token does not identify a known caller")

// Caller is the authenticated identity attached to a request.
type Caller struct {
	UserID uuid.UUID
	Role   user.Role
}

type TokenValidator interface {
	ValidateToken(tokenString string) (Caller, error)
}

type jwtTokenValidator struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &jwtTokenValidator{jwtService: jwtService}
}

// ValidateToken rejects tokens whose subject disagrees with the user id claim.
func (v *jwtTokenValidator) ValidateToken(tokenString string) (Caller, error) {
	claims, err := v.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Caller{}, err
	}
	if claims.Subject != "" && claims.Subject != claims.UserID.String() {
		return Caller{}, ErrUntrustedCaller
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Caller{}, errs.Mark(errs.Wrap(err, "token role"), ErrUntrustedCaller)
	}

	return Caller{UserID: claims.UserID, Role: role}, nil
}
