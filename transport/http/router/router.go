package router

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"atrium/internal/handlers/auth"
	"atrium/internal/handlers/event"
	"atrium/internal/handlers/lock"
	"atrium/internal/handlers/user"
	"atrium/internal/handlers/venue"
)

type DomainHandlers struct {
	Auth  auth.Handler
	User  user.Handler
	Venue venue.Handler
	Event event.Handler
	Lock  lock.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Venue.Router(routerGroup)
		r.DomainHandlers.Event.Router(routerGroup)
		r.DomainHandlers.Lock.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
