package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fleetrent/transport/http/response"
)

type Handler struct{}

func New() Handler {
	return Handler{}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/health", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.Health)
	})
}

// Health reports liveness.
// @Summary Health check
// @Description Report that the service is up.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message "OK"
// @Router /health [get]
func (handler *Handler) Health(writer http.ResponseWriter, _ *http.Request) {
	response.WithMessage(writer, http.StatusOK, "OK")
}
