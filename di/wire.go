//go:build wireinject
// +build wireinject

package di

import (
	"todoapi/config"
	"todoapi/infras/jwt"
	"todoapi/infras/otel"
	"todoapi/infras/postgres"
	"todoapi/infras/redis"
	homeHandler "todoapi/internal/handlers/home"
	taskHandler "todoapi/internal/handlers/task"
	userHandler "todoapi/internal/handlers/user"
	"todoapi/shared/cache"
	"todoapi/transport/http"
	"todoapi/transport/http/middleware"
	"todoapi/transport/http/router"

	taskRepository "todoapi/internal/domains/task/repository"
	taskService "todoapi/internal/domains/task/service"
	userRepository "todoapi/internal/domains/user/repository"
	userService "todoapi/internal/domains/user/service"

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
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var taskDomain = wire.NewSet(
	taskRepository.New,
	taskService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var domains = wire.NewSet(
	taskDomain,
	userDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	homeHandler.New,
	taskHandler.New,
	userHandler.New,
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
