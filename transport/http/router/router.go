package router

import (
	"github.com/go-chi/chi/v5"

	"fleetrent/internal/handlers/booking"
	"fleetrent/internal/handlers/car"
	"fleetrent/internal/handlers/customer"
	"fleetrent/internal/handlers/health"
	"fleetrent/internal/handlers/media"
	"fleetrent/internal/handlers/stats"
	"fleetrent/internal/handlers/sync"
	"fleetrent/transport/http/middleware"
)

type DomainHandlers struct {
	Health   health.Handler
	Car      car.Handler
	Customer customer.Handler
	Booking  booking.Handler
	Sync     sync.Handler
	Media    media.Handler
	Stats    stats.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AppMiddleware  middleware.AppMiddleware
	AuthMiddleware middleware.Auth
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.AppMiddleware.Tracing)
	router.Use(r.AppMiddleware.RateLimit())

	r.DomainHandlers.Health.Router(router)

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthMiddleware.APIKey)
		routerGroup.Use(r.AuthMiddleware.Auth)

		r.DomainHandlers.Car.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Sync.Router(routerGroup)
		r.DomainHandlers.Media.Router(routerGroup)
		r.DomainHandlers.Stats.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware, authMiddleware middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AppMiddleware:  appMiddleware,
		AuthMiddleware: authMiddleware,
	}
}
