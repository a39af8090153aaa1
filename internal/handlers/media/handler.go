package media

import (
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"fleetrent/infras/otel"
	"fleetrent/internal/domains/media/service"
	"fleetrent/shared/constant"
	"fleetrent/shared/failure"
	"fleetrent/transport/http/response"
)

type Handler struct {
	service service.Media
	otel    otel.Otel
}

func New(service service.Media, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/media", func(routerGroup chi.Router) {
		routerGroup.Post("/cars/{id}/photo", handler.UploadCarPhoto)
		routerGroup.Post("/customers/{id}/document", handler.UploadCustomerDocument)
	})
}

// UploadCarPhoto stores a photo for a car and records its URL.
// @Summary Upload a car photo
// @Description Upload a photo for a car. The stored URL is recorded on the car record.
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Car ID"
// @Param file formData file true "Photo file"
// @Success 200 {object} response.Data[string] "Stored photo URL"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media/cars/{id}/photo [post]
// @Security BearerAuth
func (handler *Handler) UploadCarPhoto(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadCarPhoto")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	file, header, err := handler.formFile(request)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read uploaded file")

		response.WithError(writer, err)

		return
	}
	defer file.Close()

	url, err := handler.service.UploadCarPhoto(ctx, id, file, header)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload car photo")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Car photo uploaded successfully")

	response.WithJSON(writer, http.StatusOK, url)
}

// UploadCustomerDocument stores an identity document for a customer.
// @Summary Upload a customer document
// @Description Upload an identity or licence document for a customer. The stored URL is recorded on the customer record.
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Customer ID"
// @Param file formData file true "Document file"
// @Success 200 {object} response.Data[string] "Stored document URL"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media/customers/{id}/document [post]
// @Security BearerAuth
func (handler *Handler) UploadCustomerDocument(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadCustomerDocument")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	file, header, err := handler.formFile(request)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read uploaded file")

		response.WithError(writer, err)

		return
	}
	defer file.Close()

	url, err := handler.service.UploadCustomerDocument(ctx, id, file, header)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload customer document")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Customer document uploaded successfully")

	response.WithJSON(writer, http.StatusOK, url)
}

func (handler *Handler) formFile(request *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return nil, nil, failure.BadRequestFromString("request is not valid multipart form data") // nolint:wrapcheck
	}

	file, header, err := request.FormFile(constant.FormFile)
	if err != nil {
		return nil, nil, failure.BadRequestFromString("missing file in form data") // nolint:wrapcheck
	}

	return file, header, nil
}
