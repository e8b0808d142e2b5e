package components

import (
	"rental-booking/internal/infra/cache"
	"rental-booking/internal/infra/readstore"
	"rental-booking/internal/infra/uow"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	readstoreModule,
	repositoryModule,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		NewCarLookup,
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			NewUnitOfWork,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)

func NewUnitOfWork(pool *pgxpool.Pool, cfg config.Config) *uow.PostgresUoW {
	return uow.NewPostgresUoW(pool, cfg.DB)
}

func NewReservationReadStore(pool *pgxpool.Pool) *readstore.ReservationReadStore {
	return readstore.NewReservationReadStore(pool)
}

// NewCarLookup puts the redis read-through cache in front of the cars table
// when a client is configured.
func NewCarLookup(pool *pgxpool.Pool, client *redis.Client, cfg config.Config) shared.CarLookup {
	base := readstore.NewCarReadStore(pool)
	if client == nil {
		return base
	}
	return cache.NewCachedCarLookup(base, client, cfg.Redis.CarTTL)
}
