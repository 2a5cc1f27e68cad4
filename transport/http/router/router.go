package router

import (
	"todoapi/internal/handlers/home"
	"todoapi/internal/handlers/task"
	"todoapi/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Home home.Handler
	Task task.Handler
	User user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

// SetupRoutes mounts every domain's route group at the root; the wire
// contract has no version prefix.
func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Home.Router(router)
	r.DomainHandlers.Task.Router(router)
	r.DomainHandlers.User.Router(router)
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
