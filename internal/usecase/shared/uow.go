package shared

import (
	"context"

	"rental-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
}

type CommandReads interface {
	CarLookup
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
}

// CarLookup resolves the rentable car of a booking request.
type CarLookup interface {
	CarByID(ctx context.Context, id uuid.UUID) (*CarSnapshot, error)
}

type ReservationRepository interface {
	reservation.ConflictFinder

	// LockCars serializes booking decisions per car until the transaction ends.
	LockCars(ctx context.Context, carIDs ...uuid.UUID) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	Insert(ctx context.Context, res *reservation.Reservation) error
	Update(ctx context.Context, res *reservation.Reservation) error
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)
}
