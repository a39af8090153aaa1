//go:build wireinject
// +build wireinject

package di

import (
	"fleetrent/config"
	"fleetrent/infras/jwt"
	"fleetrent/infras/kafka"
	"fleetrent/infras/otel"
	"fleetrent/infras/postgres"
	"fleetrent/infras/redis"
	"fleetrent/infras/s3"
	"fleetrent/internal/events"
	"fleetrent/shared/cache"
	"fleetrent/transport/http"
	"fleetrent/transport/http/middleware"
	"fleetrent/transport/http/router"

	"fleetrent/internal/domains/booking/conflict"
	bookingRepository "fleetrent/internal/domains/booking/repository"
	bookingService "fleetrent/internal/domains/booking/service"
	carRepository "fleetrent/internal/domains/car/repository"
	carService "fleetrent/internal/domains/car/service"
	customerRepository "fleetrent/internal/domains/customer/repository"
	customerService "fleetrent/internal/domains/customer/service"
	"fleetrent/internal/domains/ident"
	mediaService "fleetrent/internal/domains/media/service"
	statsRepository "fleetrent/internal/domains/stats/repository"
	statsService "fleetrent/internal/domains/stats/service"
	syncService "fleetrent/internal/domains/sync/service"

	bookingHandler "fleetrent/internal/handlers/booking"
	carHandler "fleetrent/internal/handlers/car"
	customerHandler "fleetrent/internal/handlers/customer"
	healthHandler "fleetrent/internal/handlers/health"
	mediaHandler "fleetrent/internal/handlers/media"
	statsHandler "fleetrent/internal/handlers/stats"
	syncHandler "fleetrent/internal/handlers/sync"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	events.New,
)

var carDomain = wire.NewSet(
	carRepository.New,
	carService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	conflict.New,
	ident.New,
	bookingService.New,
)

var syncDomain = wire.NewSet(
	syncService.New,
)

var mediaDomain = wire.NewSet(
	mediaService.New,
)

var statsDomain = wire.NewSet(
	statsRepository.New,
	statsService.New,
)

var domains = wire.NewSet(
	carDomain,
	customerDomain,
	bookingDomain,
	syncDomain,
	mediaDomain,
	statsDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	carHandler.New,
	customerHandler.New,
	bookingHandler.New,
	syncHandler.New,
	mediaHandler.New,
	statsHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
