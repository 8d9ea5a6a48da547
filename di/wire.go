//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"medsched/config"
	"medsched/infras/otel"
	"medsched/infras/redis"
	appointmentHandler "medsched/internal/handlers/appointment"
	reportHandler "medsched/internal/handlers/report"
	roomHandler "medsched/internal/handlers/room"
	"medsched/internal/scheduling"
	"medsched/internal/storage"
	"medsched/shared/cache"
	"medsched/transport/http"
	"medsched/transport/http/middleware"
	"medsched/transport/http/router"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var engine = wire.NewSet(
	storage.NewStores,
	scheduling.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	appointmentHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		engine,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}

func InitializeEngine() (*scheduling.Facade, error) {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		engine,
	)

	return &scheduling.Facade{}, nil
}
