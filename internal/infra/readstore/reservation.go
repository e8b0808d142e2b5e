package readstore

import (
	"context"
	"log/slog"

	"rental-booking/internal/infra"
	"rental-booking/internal/infra/db"
	"rental-booking/internal/pkg/pgconv"
	"rental-booking/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type reservationViewRow struct {
	ID                   uuid.UUID          `db:"id"`
	UserID               uuid.UUID          `db:"user_id"`
	UserEmail            string             `db:"user_email"`
	PickUpTime           pgtype.Timestamptz `db:"pick_up_time"`
	DropOffTime          pgtype.Timestamptz `db:"drop_off_time"`
	PickUpLocation       string             `db:"pick_up_location"`
	DropOffLocation      string             `db:"drop_off_location"`
	Status               string             `db:"status"`
	TotalPriceCents      int64              `db:"total_price_cents"`
	CreatedAt            pgtype.Timestamptz `db:"created_at"`
	UpdatedAt            pgtype.Timestamptz `db:"updated_at"`
	CarID                uuid.UUID          `db:"car_id"`
	CarModel             string             `db:"car_model"`
	CarPricePerHourCents int64              `db:"car_price_per_hour_cents"`
	CarBuiltIn           bool               `db:"car_built_in"`
}

func (row reservationViewRow) toView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:              row.ID,
		UserID:          row.UserID,
		UserEmail:       row.UserEmail,
		PickUpTime:      pgconv.TimeFromPgtype(row.PickUpTime),
		DropOffTime:     pgconv.TimeFromPgtype(row.DropOffTime),
		PickUpLocation:  row.PickUpLocation,
		DropOffLocation: row.DropOffLocation,
		Status:          row.Status,
		TotalPriceCents: row.TotalPriceCents,
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
		Car: queries.CarView{
			ID:                row.CarID,
			Model:             row.CarModel,
			PricePerHourCents: row.CarPricePerHourCents,
			BuiltIn:           row.CarBuiltIn,
		},
	}
}

type ReservationReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx, logger: slog.Default()}
}

func reservationViewQuery() *goqu.SelectDataset {
	return db.Dialect.From(goqu.T("reservations").As("r")).
		Join(goqu.T("cars").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("r.car_id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("r.user_id")))).
		Select(
			goqu.I("r.id").As("id"),
			goqu.I("r.user_id").As("user_id"),
			goqu.I("u.email").As("user_email"),
			goqu.I("r.pick_up_time").As("pick_up_time"),
			goqu.I("r.drop_off_time").As("drop_off_time"),
			goqu.I("r.pick_up_location").As("pick_up_location"),
			goqu.I("r.drop_off_location").As("drop_off_location"),
			goqu.I("r.status").As("status"),
			goqu.I("r.total_price_cents").As("total_price_cents"),
			goqu.I("r.created_at").As("created_at"),
			goqu.I("r.updated_at").As("updated_at"),
			goqu.I("c.id").As("car_id"),
			goqu.I("c.model").As("car_model"),
			goqu.I("c.price_per_hour_cents").As("car_price_per_hour_cents"),
			goqu.I("c.built_in").As("car_built_in"),
		)
}

// PageQuery renders one page of reservations ordered by the requested
// column, with the id as tie breaker so pages never overlap.
func PageQuery(filter []exp.Expression, req queries.PageRequest) *goqu.SelectDataset {
	col := goqu.I("r." + req.Sort.Column())
	order := col.Desc()
	if req.Direction == queries.DirectionAsc {
		order = col.Asc()
	}
	ds := reservationViewQuery().
		Where(filter...).
		Order(order)
	if req.Sort != queries.SortID {
		ds = ds.OrderAppend(goqu.I("r.id").Asc())
	}
	return ds.
		Limit(uint(req.Size)).
		Offset(uint(req.Offset())).
		Prepared(true)
}

func countQuery(filter []exp.Expression) *goqu.SelectDataset {
	return db.Dialect.From(goqu.T("reservations").As("r")).
		Select(goqu.COUNT("*")).
		Where(filter...).
		Prepared(true)
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	return r.findOne(ctx, goqu.I("r.id").Eq(id.String()))
}

func (r *ReservationReadStore) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*queries.ReservationView, error) {
	return r.findOne(ctx,
		goqu.I("r.id").Eq(id.String()),
		goqu.I("r.user_id").Eq(userID.String()))
}

func (r *ReservationReadStore) findOne(ctx context.Context, filter ...exp.Expression) (*queries.ReservationView, error) {
	query, args, err := reservationViewQuery().Where(filter...).Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build reservation query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.ClassifyDBErr(r.logger, "failed to find reservation by ID", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[reservationViewRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.ClassifyDBErr(r.logger, "failed to scan reservation", err)
	}
	return row.toView(), nil
}

func (r *ReservationReadStore) FindAll(ctx context.Context) ([]*queries.ReservationView, error) {
	query, args, err := reservationViewQuery().
		Order(goqu.I("r.pick_up_time").Desc(), goqu.I("r.id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build reservation list query", err)
	}
	return r.collect(ctx, query, args)
}

func (r *ReservationReadStore) FindPage(ctx context.Context, req queries.PageRequest) ([]*queries.ReservationView, int64, error) {
	return r.findPage(ctx, nil, req)
}

func (r *ReservationReadStore) FindPageByUser(ctx context.Context, userID uuid.UUID, req queries.PageRequest) ([]*queries.ReservationView, int64, error) {
	return r.findPage(ctx, []exp.Expression{goqu.I("r.user_id").Eq(userID.String())}, req)
}

func (r *ReservationReadStore) findPage(ctx context.Context, filter []exp.Expression, req queries.PageRequest) ([]*queries.ReservationView, int64, error) {
	countSQL, countArgs, err := countQuery(filter).ToSQL()
	if err != nil {
		return nil, 0, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build reservation count query", err)
	}
	var total int64
	if err = r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, infra.ClassifyDBErr(r.logger, "failed to count reservations", err)
	}
	if total == 0 {
		return []*queries.ReservationView{}, 0, nil
	}

	query, args, err := PageQuery(filter, req).ToSQL()
	if err != nil {
		return nil, 0, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build reservation page query", err)
	}
	views, err := r.collect(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (r *ReservationReadStore) collect(ctx context.Context, query string, args []any) ([]*queries.ReservationView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.ClassifyDBErr(r.logger, "failed to list reservations", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[reservationViewRow])
	if err != nil {
		return nil, infra.ClassifyDBErr(r.logger, "failed to scan reservations", err)
	}

	views := make([]*queries.ReservationView, len(list))
	for i, row := range list {
		views[i] = row.toView()
	}
	return views, nil
}

func (r *ReservationReadStore) ExistsForCar(ctx context.Context, carID uuid.UUID) (bool, error) {
	return r.exists(ctx, goqu.C("car_id").Eq(carID.String()))
}

func (r *ReservationReadStore) ExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	return r.exists(ctx, goqu.C("user_id").Eq(userID.String()))
}

func (r *ReservationReadStore) exists(ctx context.Context, filter exp.Expression) (bool, error) {
	sub := db.Dialect.From("reservations").Select(goqu.L("1")).Where(filter)
	query, args, err := db.Dialect.Select(goqu.L("EXISTS ?", sub)).Prepared(true).ToSQL()
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build exists query", err)
	}

	var ok bool
	if err = r.db.QueryRow(ctx, query, args...).Scan(&ok); err != nil {
		return false, infra.ClassifyDBErr(r.logger, "failed to check reservation existence", err)
	}
	return ok, nil
}
