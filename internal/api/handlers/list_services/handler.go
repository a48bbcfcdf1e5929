package list_services

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/clockly/booking-service/internal/api/handlers"
	"github.com/clockly/booking-service/internal/service/providers"
)

const (
	msgProviderNotFound = "провайдер не найден"
)

type Handler struct {
	service ProviderService
	logger  Logger
}

func NewHandler(service ProviderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerSlug}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["providerSlug"]

	result, err := h.service.ListServices(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, providers.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{slug}/services - Provider not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgProviderNotFound)

		default:
			h.logger.Error("GET /providers/{slug}/services - Failed: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
