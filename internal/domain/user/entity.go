package user

import (
	"github.com/google/uuid"
)

// User is the booking party of a reservation. Accounts are managed by the
// identity service, so this side only reads them.
type User struct {
	id       uuid.UUID
	email    Email
	role     Role
	isActive bool
}

func NewUser(email Email, role Role) *User {
	return &User{
		id:       uuid.New(),
		email:    email,
		role:     role,
		isActive: true,
	}
}

func ReconstructUser(id uuid.UUID, email Email, role Role, isActive bool) *User {
	return &User{id: id, email: email, role: role, isActive: isActive}
}

func (u *User) ID() uuid.UUID  { return u.id }
func (u *User) Email() Email   { return u.email }
func (u *User) Role() Role     { return u.role }
func (u *User) IsActive() bool { return u.isActive }
