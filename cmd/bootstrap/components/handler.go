package components

import (
	"tutorhub/internal/handler"
	"tutorhub/internal/handler/api"
	"tutorhub/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewReviewHandler,
		middleware.NewAuthMiddleware,
		middleware.NewMetricsRegistry,
	),
	fx.Invoke(handler.NewRouter),
)
