//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"atrium/config"
	"atrium/infras/jwt"
	"atrium/infras/kafka"
	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/infras/redis"
	"atrium/infras/s3"
	"atrium/permissions"
	"atrium/shared/cache"
	"atrium/transport/http"
	"atrium/transport/http/middleware"
	"atrium/transport/http/router"

	authService "atrium/internal/domains/auth/service"
	eventRepository "atrium/internal/domains/event/repository"
	eventService "atrium/internal/domains/event/service"
	lockRepository "atrium/internal/domains/lock/repository"
	lockService "atrium/internal/domains/lock/service"
	userRepository "atrium/internal/domains/user/repository"
	userService "atrium/internal/domains/user/service"
	venueRepository "atrium/internal/domains/venue/repository"
	venueService "atrium/internal/domains/venue/service"

	authHandler "atrium/internal/handlers/auth"
	eventHandler "atrium/internal/handlers/event"
	lockHandler "atrium/internal/handlers/lock"
	userHandler "atrium/internal/handlers/user"
	venueHandler "atrium/internal/handlers/venue"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
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
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
	userService.New,
)

var venueDomain = wire.NewSet(
	venueRepository.New,
	venueService.New,
)

var eventDomain = wire.NewSet(
	eventRepository.New,
	eventService.New,
)

var lockDomain = wire.NewSet(
	lockRepository.New,
	lockService.New,
)

var domains = wire.NewSet(
	authDomain,
	venueDomain,
	eventDomain,
	lockDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	venueHandler.New,
	eventHandler.New,
	lockHandler.New,
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

func InitializeSweeper() *lockService.Sweeper {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		kafka.New,
		lockRepository.New,
		venueRepository.New,
		eventRepository.New,
		lockService.New,
		lockService.NewSweeper,
	)

	return &lockService.Sweeper{}
}
