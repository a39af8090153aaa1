package sync

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"fleetrent/infras/otel"
	"fleetrent/internal/domains/sync/model/dto"
	"fleetrent/internal/domains/sync/service"
	"fleetrent/shared/constant"
	"fleetrent/shared/validator"
	"fleetrent/transport/http/response"
)

type Handler struct {
	service service.Sync
	otel    otel.Otel
}

func New(service service.Sync, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/sync", func(routerGroup chi.Router) {
		routerGroup.Post("/reconcile", handler.Reconcile)
	})
}

// Reconcile applies a client's offline write queue against the live store.
// @Summary Reconcile offline operations
// @Description Apply a queue of writes recorded while the client was offline. Each operation gets its own outcome; a rejected item never aborts the batch.
// @Tags Sync
// @Accept json
// @Produce json
// @Param request body dto.ReconcileRequest true "Reconcile Request"
// @Success 200 {object} response.Data[dto.ReconcileResponse] "Per-operation reconciliation report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sync/reconcile [post]
// @Security BearerAuth
func (handler *Handler) Reconcile(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reconcile")
	defer scope.End()

	req := dto.ReconcileRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	report, err := handler.service.Reconcile(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reconcile offline operations")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Offline operations reconciled")

	response.WithJSON(writer, http.StatusOK, report)
}
