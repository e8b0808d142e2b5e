package repository

import (
	"context"
	"log/slog"
	"slices"

	"rental-booking/internal/domain/reservation"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/db"
	"rental-booking/internal/pkg/pgconv"
	"rental-booking/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationsTable = "reservations"

var reservationColumns = []any{
	"id", "car_id", "user_id",
	"pick_up_time", "drop_off_time",
	"pick_up_location", "drop_off_location",
	"status", "total_price_cents",
	"created_at", "updated_at",
}

type reservationRow struct {
	ID              uuid.UUID          `db:"id"`
	CarID           uuid.UUID          `db:"car_id"`
	UserID          uuid.UUID          `db:"user_id"`
	PickUpTime      pgtype.Timestamptz `db:"pick_up_time"`
	DropOffTime     pgtype.Timestamptz `db:"drop_off_time"`
	PickUpLocation  string             `db:"pick_up_location"`
	DropOffLocation string             `db:"drop_off_location"`
	Status          string             `db:"status"`
	TotalPriceCents int64              `db:"total_price_cents"`
	CreatedAt       pgtype.Timestamptz `db:"created_at"`
	UpdatedAt       pgtype.Timestamptz `db:"updated_at"`
}

func (row reservationRow) toSnapshot() *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:              row.ID,
		CarID:           row.CarID,
		UserID:          row.UserID,
		PickUpTime:      pgconv.TimeFromPgtype(row.PickUpTime),
		DropOffTime:     pgconv.TimeFromPgtype(row.DropOffTime),
		PickUpLocation:  row.PickUpLocation,
		DropOffLocation: row.DropOffLocation,
		Status:          row.Status,
		TotalPriceCents: row.TotalPriceCents,
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

type ReservationRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{
		db:     dbtx,
		logger: slog.Default(),
	}
}

// LockCars takes a transaction-scoped advisory lock per car. Ids are locked in
// sorted order so two transactions never wait on each other crosswise.
func (r *ReservationRepository) LockCars(ctx context.Context, carIDs ...uuid.UUID) error {
	ids := slices.Clone(carIDs)
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })
	ids = slices.Compact(ids)

	for _, id := range ids {
		query, args, err := db.Dialect.
			Select(goqu.Func("pg_advisory_xact_lock",
				goqu.Func("hashtextextended", id.String(), 0))).
			Prepared(true).
			ToSQL()
		if err != nil {
			return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build car lock query", err)
		}
		if _, err = r.db.Exec(ctx, query, args...); err != nil {
			return infra.ClassifyDBErr(r.logger, "failed to lock car", err)
		}
	}
	return nil
}

func (r *ReservationRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	return r.findOne(ctx, db.Dialect.From(reservationsTable).
		Select(reservationColumns...).
		Where(goqu.C("id").Eq(id.String())).
		ForUpdate(exp.Wait))
}

func (r *ReservationRepository) findOne(ctx context.Context, ds *goqu.SelectDataset) (*shared.ReservationSnapshot, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build reservation query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.ClassifyDBErr(r.logger, "failed to find reservation", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[reservationRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.ClassifyDBErr(r.logger, "failed to scan reservation", err)
	}
	return row.toSnapshot(), nil
}

// FindConflicting returns reservations of the car whose closed window meets
// [q.PickUp, q.DropOff] and whose status is not excluded.
func (r *ReservationRepository) FindConflicting(ctx context.Context, q reservation.ConflictQuery) ([]uuid.UUID, error) {
	query, args, err := ConflictQuery(q).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build conflict query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.ClassifyDBErr(r.logger, "failed to find conflicting reservations", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, infra.ClassifyDBErr(r.logger, "failed to scan conflicting reservations", err)
	}
	return ids, nil
}

// ConflictQuery renders the overlap predicate shared by every conflict check.
func ConflictQuery(q reservation.ConflictQuery) *goqu.SelectDataset {
	ds := db.Dialect.From(reservationsTable).
		Select("id").
		Where(
			goqu.C("car_id").Eq(q.CarID.String()),
			goqu.C("pick_up_time").Lte(q.DropOff),
			goqu.C("drop_off_time").Gte(q.PickUp),
		)
	if len(q.ExcludedStatuses) > 0 {
		excluded := make([]string, len(q.ExcludedStatuses))
		for i, s := range q.ExcludedStatuses {
			excluded[i] = s.String()
		}
		ds = ds.Where(goqu.C("status").NotIn(excluded))
	}
	return ds.Order(goqu.C("pick_up_time").Asc()).Prepared(true)
}

func (r *ReservationRepository) Insert(ctx context.Context, res *reservation.Reservation) error {
	query, args, err := db.Dialect.Insert(reservationsTable).
		Rows(goqu.Record{
			"id":                res.ID().String(),
			"car_id":            res.CarID().String(),
			"user_id":           res.UserID().String(),
			"pick_up_time":      res.Window().PickUp(),
			"drop_off_time":     res.Window().DropOff(),
			"pick_up_location":  res.Route().PickUp.String(),
			"drop_off_location": res.Route().DropOff.String(),
			"status":            res.Status().String(),
			"total_price_cents": res.TotalPrice().Cents(),
			"created_at":        res.CreatedAt(),
			"updated_at":        res.UpdatedAt(),
		}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build reservation insert", err)
	}

	if _, err = r.db.Exec(ctx, query, args...); err != nil {
		return infra.ClassifyDBErr(r.logger, "failed to create reservation", err)
	}
	return nil
}

// Update replaces every mutable column in one statement.
func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	query, args, err := db.Dialect.Update(reservationsTable).
		Set(goqu.Record{
			"car_id":            res.CarID().String(),
			"pick_up_time":      res.Window().PickUp(),
			"drop_off_time":     res.Window().DropOff(),
			"pick_up_location":  res.Route().PickUp.String(),
			"drop_off_location": res.Route().DropOff.String(),
			"status":            res.Status().String(),
			"total_price_cents": res.TotalPrice().Cents(),
			"updated_at":        res.UpdatedAt(),
		}).
		Where(goqu.C("id").Eq(res.ID().String())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build reservation update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.ClassifyDBErr(r.logger, "failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found", nil)
	}
	return nil
}

func (r *ReservationRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	query, args, err := db.Dialect.Delete(reservationsTable).
		Where(goqu.C("id").Eq(id.String())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build reservation delete", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, infra.ClassifyDBErr(r.logger, "failed to delete reservation", err)
	}
	return tag.RowsAffected() > 0, nil
}
