package get_provider_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/clockly/booking-service/internal/api/handlers"
	"github.com/clockly/booking-service/internal/api/middleware"
	"github.com/clockly/booking-service/internal/domain"
	"github.com/clockly/booking-service/internal/service/bookings"
	"github.com/clockly/booking-service/internal/service/bookings/models"
)

const (
	msgMissingProviderID = "отсутствует ID провайдера"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter     = "некорректные параметры фильтрации"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/me/bookings?date=YYYY-MM-DD&status=pending&includeCancelled=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.GetProviderID(r.Context())
	if !ok {
		h.logger.Warn("GET /providers/me/bookings - Missing provider ID")
		handlers.RespondUnauthorized(w, msgMissingProviderID)
		return
	}

	req := &models.GetProviderBookingsRequest{ProviderID: providerID}

	query := r.URL.Query()
	if raw := query.Get("date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}
	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}
	req.IncludeCancelled = query.Get("includeCancelled") == "true"

	result, err := h.service.GetProviderBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /providers/me/bookings - Failed: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/me/bookings - %d bookings for provider_id=%d", len(result.Bookings), providerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
