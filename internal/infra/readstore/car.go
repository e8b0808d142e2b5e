package readstore

import (
	"context"
	"log/slog"

	"rental-booking/internal/infra"
	"rental-booking/internal/infra/db"
	"rental-booking/internal/pkg/pgconv"
	"rental-booking/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type carRow struct {
	ID                uuid.UUID `db:"id"`
	Model             string    `db:"model"`
	PricePerHourCents int64     `db:"price_per_hour_cents"`
	BuiltIn           bool      `db:"built_in"`
}

// CarReadStore reads the car catalog owned by the fleet side.
type CarReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewCarReadStore(dbtx db.DBTX) *CarReadStore {
	return &CarReadStore{db: dbtx, logger: slog.Default()}
}

func (r *CarReadStore) CarByID(ctx context.Context, id uuid.UUID) (*shared.CarSnapshot, error) {
	query, args, err := db.Dialect.From("cars").
		Select("id", "model", "price_per_hour_cents", "built_in").
		Where(goqu.C("id").Eq(id.String())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build car query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.ClassifyDBErr(r.logger, "failed to find car by ID", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[carRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "car not found", err)
		}
		return nil, infra.ClassifyDBErr(r.logger, "failed to scan car", err)
	}

	return &shared.CarSnapshot{
		ID:                row.ID,
		Model:             row.Model,
		PricePerHourCents: row.PricePerHourCents,
		BuiltIn:           row.BuiltIn,
	}, nil
}
