package home

import (
	"net/http"
	"todoapi/shared/constant"
	"todoapi/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct{}

func New() Handler {
	return Handler{}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/", handler.Home)
}

// Home returns the fixed welcome string for the root path.
func (handler *Handler) Home(w http.ResponseWriter, _ *http.Request) {
	response.WithText(w, http.StatusOK, constant.WelcomeMessage)
}
