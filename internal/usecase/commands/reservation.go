package commands

import (
	"context"
	"log/slog"
	"time"

	"rental-booking/internal/domain/car"
	"rental-booking/internal/domain/reservation"
	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidWindow           = errs.New("reservation time is incorrect")
	ErrInvalidLocation         = errs.New("invalid pick-up or drop-off location")
	ErrInvalidStatus           = errs.New("invalid reservation status")
	ErrCarUnavailable          = errs.New("car is not available for the selected time")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrCarNotFound             = errs.New("car not found")
	ErrUserNotFound            = errs.New("user not found")
	ErrLifecycleViolation      = errs.New("reservation status cannot be changed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateReservationInput struct {
	CarID           uuid.UUID
	UserID          uuid.UUID
	PickUpTime      time.Time
	DropOffTime     time.Time
	PickUpLocation  string
	DropOffLocation string
}

// UpdateReservationInput replaces every mutable field. An empty Status keeps
// the current one.
type UpdateReservationInput struct {
	PickUpTime      time.Time
	DropOffTime     time.Time
	PickUpLocation  string
	DropOffLocation string
	Status          string
}

type CreateReservationResult struct {
	ReservationID uuid.UUID
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error)
	UpdateReservation(ctx context.Context, reservationID, carID uuid.UUID, in UpdateReservationInput) error
	RemoveByID(ctx context.Context, reservationID uuid.UUID) error
	CheckCarAvailability(ctx context.Context, carID uuid.UUID, pickUp, dropOff time.Time) (bool, error)
	TotalPrice(ctx context.Context, carID uuid.UUID, pickUp, dropOff time.Time) (reservation.Money, error)
}

type reservationUseCaseImpl struct {
	uow      shared.UnitOfWork
	cars     shared.CarLookup
	services *reservation.Services
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	cars shared.CarLookup,
	clk clock.Clock,
	priceCalculator reservation.PriceCalculator,
) ReservationCommands {
	return &reservationUseCaseImpl{
		uow:  uow,
		cars: cars,
		services: &reservation.Services{
			Clock:           clk,
			PriceCalculator: priceCalculator,
		},
	}
}

func (uc *reservationUseCaseImpl) CreateReservation(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error) {
	carSpec, err := uc.loadCar(ctx, in.CarID)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureUser(ctx, in.UserID); err != nil {
		return nil, err
	}

	route, err := reservation.NewRoute(in.PickUpLocation, in.DropOffLocation)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidLocation)
	}
	window, err := reservation.NewTimeWindow(in.PickUpTime, in.DropOffTime, uc.services.Clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidWindow)
	}

	var created *reservation.Reservation
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		repo := tx.Reservations()
		if lerr := repo.LockCars(ctx, carSpec.ID); lerr != nil {
			return lerr
		}

		conflicts, derr := reservation.DetectConflicts(ctx, repo, carSpec.ID,
			window.PickUp(), window.DropOff(), reservation.InactiveStatuses)
		if derr != nil {
			return derr
		}
		if !conflicts.Empty() {
			return ErrCarUnavailable
		}

		res, derr := reservation.NewReservation(uc.services, carSpec, in.UserID, window, route)
		if derr != nil {
			return derr
		}
		if derr = repo.Insert(ctx, res); derr != nil {
			return derr
		}
		created = res
		return nil
	})
	if err != nil {
		if errs.Is(err, ErrCarUnavailable) || infra.IsKind(err, infra.KindConflict) {
			slog.InfoContext(ctx, "car unavailable",
				"car_id", in.CarID.String(),
				"pick_up", in.PickUpTime,
				"drop_off", in.DropOffTime)
		}
		return nil, classify(err)
	}

	slog.InfoContext(ctx, "reservation created",
		"reservation_id", created.ID().String(),
		"car_id", created.CarID().String(),
		"user_id", created.UserID().String(),
		"total_price_cents", created.TotalPrice().Cents())

	return &CreateReservationResult{ReservationID: created.ID()}, nil
}

// UpdateReservation rejects terminal reservations before looking at any of
// the requested changes.
func (uc *reservationUseCaseImpl) UpdateReservation(
	ctx context.Context,
	reservationID, carID uuid.UUID,
	in UpdateReservationInput,
) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		repo := tx.Reservations()
		snap, derr := repo.GetForUpdate(ctx, reservationID)
		if derr != nil {
			return derr
		}
		res, derr := snap.ToDomain()
		if derr != nil {
			return derr
		}
		if derr = res.EnsureMutable(); derr != nil {
			return derr
		}

		target, derr := parseTargetStatus(in.Status)
		if derr != nil {
			return derr
		}
		route, derr := reservation.NewRoute(in.PickUpLocation, in.DropOffLocation)
		if derr != nil {
			return errs.Mark(derr, ErrInvalidLocation)
		}
		carSpec, derr := uc.loadCar(ctx, carID)
		if derr != nil {
			return derr
		}

		// The stored status of a mutable reservation is CREATED, so an
		// omitted status takes the rescheduling path.
		if target == nil || *target == reservation.StatusCreated {
			if derr = uc.reschedule(ctx, repo, res, carSpec, in, route); derr != nil {
				return derr
			}
		} else {
			window := reservation.ReconstructTimeWindow(in.PickUpTime, in.DropOffTime)
			if derr = res.Transition(uc.services, *target, window, route); derr != nil {
				return derr
			}
		}

		return repo.Update(ctx, res)
	})
	if err != nil {
		return classify(err)
	}

	slog.InfoContext(ctx, "reservation updated",
		"reservation_id", reservationID.String(),
		"car_id", carID.String(),
		"status", in.Status)
	return nil
}

func parseTargetStatus(raw string) (*reservation.Status, error) {
	if raw == "" {
		return nil, nil
	}
	st, err := reservation.NewStatus(raw)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStatus)
	}
	return &st, nil
}

func (uc *reservationUseCaseImpl) reschedule(
	ctx context.Context,
	repo shared.ReservationRepository,
	res *reservation.Reservation,
	carSpec reservation.CarSpec,
	in UpdateReservationInput,
	route reservation.Route,
) error {
	window, err := reservation.NewTimeWindow(in.PickUpTime, in.DropOffTime, uc.services.Clock.Now())
	if err != nil {
		return err
	}
	if err = repo.LockCars(ctx, res.CarID(), carSpec.ID); err != nil {
		return err
	}

	conflicts, err := reservation.DetectConflicts(ctx, repo, carSpec.ID,
		window.PickUp(), window.DropOff(), reservation.InactiveStatuses)
	if err != nil {
		return err
	}
	if !conflicts.Without(res.ID()).Empty() {
		return ErrCarUnavailable
	}

	return res.Reschedule(uc.services, carSpec, window, route)
}

func (uc *reservationUseCaseImpl) RemoveByID(ctx context.Context, reservationID uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existed, derr := tx.Reservations().DeleteByID(ctx, reservationID)
		if derr != nil {
			return derr
		}
		if !existed {
			return ErrReservationNotFound
		}
		return nil
	})
	if err != nil {
		return classify(err)
	}

	slog.InfoContext(ctx, "reservation removed", "reservation_id", reservationID.String())
	return nil
}

// CheckCarAvailability only reads, so it never changes the outcome of a
// later call with the same arguments.
func (uc *reservationUseCaseImpl) CheckCarAvailability(
	ctx context.Context,
	carID uuid.UUID,
	pickUp, dropOff time.Time,
) (bool, error) {
	var available bool
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		conflicts, derr := reservation.DetectConflicts(ctx, tx.Reservations(), carID,
			pickUp, dropOff, reservation.InactiveStatuses)
		if derr != nil {
			return derr
		}
		available = conflicts.Empty()
		return nil
	})
	if err != nil {
		return false, classify(err)
	}
	return available, nil
}

func (uc *reservationUseCaseImpl) TotalPrice(
	ctx context.Context,
	carID uuid.UUID,
	pickUp, dropOff time.Time,
) (reservation.Money, error) {
	carSpec, err := uc.loadCar(ctx, carID)
	if err != nil {
		return reservation.Money{}, err
	}
	price, err := uc.services.PriceCalculator.Price(carSpec, pickUp, dropOff)
	if err != nil {
		return reservation.Money{}, classify(err)
	}
	return price, nil
}

func (uc *reservationUseCaseImpl) loadCar(ctx context.Context, carID uuid.UUID) (reservation.CarSpec, error) {
	snap, err := uc.cars.CarByID(ctx, carID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return reservation.CarSpec{}, ErrCarNotFound
		}
		return reservation.CarSpec{}, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	c, err := car.NewCar(snap.ID, snap.Model, snap.PricePerHourCents, snap.BuiltIn)
	if err != nil {
		return reservation.CarSpec{}, errs.Wrap(err, "invalid car record")
	}
	price, err := reservation.NewMoney(c.PricePerHourCents())
	if err != nil {
		return reservation.CarSpec{}, err
	}
	return reservation.CarSpec{ID: c.ID(), HourlyPrice: price}, nil
}

func (uc *reservationUseCaseImpl) ensureUser(ctx context.Context, userID uuid.UUID) error {
	snap, err := uc.uow.CommandReads().UserByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrUserNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	u, err := snap.ToDomain()
	if err != nil {
		return errs.Wrap(err, "invalid user record")
	}
	if !u.IsActive() {
		return ErrUserNotFound
	}
	return nil
}

var commandErrors = []error{
	ErrCarUnavailable,
	ErrReservationNotFound,
	ErrCarNotFound,
	ErrUserNotFound,
	ErrInvalidWindow,
	ErrLifecycleViolation,
	ErrInvalidStatus,
	ErrInvalidLocation,
}

// classify maps domain and store failures onto the command sentinels while
// keeping the original chain for logging.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errs.IsAny(err, commandErrors...):
		return err
	case errs.Is(err, reservation.ErrInvalidWindow):
		return errs.Mark(err, ErrInvalidWindow)
	case errs.Is(err, reservation.ErrLifecycleViolation):
		return errs.Mark(err, ErrLifecycleViolation)
	case errs.Is(err, reservation.ErrInvalidStatus):
		return errs.Mark(err, ErrInvalidStatus)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, ErrCarUnavailable)
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrReservationNotFound)
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}
