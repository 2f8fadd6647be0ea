package components

import (
	"tutorhub/internal/handler/middleware"
	"tutorhub/internal/infra"
	"tutorhub/internal/infra/readstore"
	infraredis "tutorhub/internal/infra/redis"
	"tutorhub/internal/infra/uow"
	"tutorhub/internal/pkg/config"
	"tutorhub/internal/usecase/commands"
	"tutorhub/internal/usecase/queries"
	"tutorhub/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewReviewReadStore,
			fx.As(new(queries.ReviewReadStore)),
		),
		fx.Annotate(
			readstore.NewTutorStatsReadStore,
			fx.As(new(queries.TutorStatsReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			NewRatingStatsCache,
			fx.As(new(queries.RatingStatsCache)),
			fx.As(new(commands.StatsCacheInvalidator)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) infra.DBTX {
	return pool
}

func NewRatingStatsCache(client *redis.Client, cfg config.Config) *infraredis.RatingStatsCache {
	return infraredis.NewRatingStatsCache(client, cfg.Redis.StatsTTL, func(event string) {
		middleware.ObserveCache("rating_stats", event)
	})
}
