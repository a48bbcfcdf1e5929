package register_provider

import (
	"errors"
	"net/http"

	"github.com/clockly/booking-service/internal/api/handlers"
	"github.com/clockly/booking-service/internal/service/providers"
	"github.com/clockly/booking-service/internal/service/providers/models"
)

const (
	msgInvalidBody     = "некорректное тело запроса"
	msgInvalidInput    = "некорректные данные провайдера"
	msgSlugUnavailable = "не удалось подобрать свободный slug"
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

// Handle POST /api/v1/internal/providers
//
// Внутренний эндпоинт: вызывается сервисом идентификации при
// провижининге провайдера, наружу не публикуется.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterProviderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /internal/providers - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, providers.ErrInvalidInput):
			h.logger.Warn("POST /internal/providers - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, providers.ErrSlugUnavailable):
			h.logger.Error("POST /internal/providers - Slug exhausted: name=%q", req.DisplayName)
			handlers.RespondError(w, http.StatusConflict, msgSlugUnavailable)

		default:
			h.logger.Error("POST /internal/providers - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}
