package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/clockly/booking-service/internal/api/handlers"
	"github.com/clockly/booking-service/internal/domain"
	getAvailableSlots "github.com/clockly/booking-service/internal/usecase/get_available_slots"
)

const (
	msgMissingDate      = "отсутствует параметр date"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidServiceID = "некорректный ID услуги"
	msgProviderNotFound = "провайдер не найден"
	msgServiceNotFound  = "услуга не найдена"
	msgInvalidRequest   = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerSlug}/available-slots?date=YYYY-MM-DD&serviceId=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["providerSlug"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var serviceID *int64
	if raw := r.URL.Query().Get("serviceId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		serviceID = &parsed
	}

	result, err := h.useCase.Execute(r.Context(), getAvailableSlots.Request{
		ProviderSlug: slug,
		ServiceID:    serviceID,
		Date:         date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrProviderNotFound):
			h.logger.Warn("GET /available-slots - Provider not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /available-slots - Service not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /available-slots - Failed: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - %d slots for slug=%s date=%s", len(result.Slots), slug, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
