package create_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/clockly/booking-service/internal/api/handlers"
	"github.com/clockly/booking-service/internal/api/middleware"
	createBooking "github.com/clockly/booking-service/internal/usecase/create_booking"
	"github.com/clockly/booking-service/pkg/txmanager"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgProviderNotFound   = "провайдер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgSlotTaken          = "выбранный временной слот уже занят"
	msgNoAvailability     = "выбранное время вне окон доступности провайдера"
	msgSlotInPast         = "нельзя забронировать прошедшее время"
	msgInvalidRequest     = "некорректные параметры запроса"
	msgBusy               = "сервис перегружен, повторите попытку"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/providers/{providerSlug}/bookings
//
// Работает и в публичном, и в провайдерском режиме: если запрос прошёл
// через middleware.Auth и аутентифицированный провайдер совпадает со slug,
// бронирование создаётся сразу подтверждённым
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["providerSlug"]

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var authProviderID *int64
	if providerID, ok := middleware.GetProviderID(r.Context()); ok {
		authProviderID = &providerID
	}

	useCaseReq, err := req.ToUseCaseRequest(slug, authProviderID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: slug=%s, date=%s, start=%s", slug, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createBooking.ErrNoAvailability):
			h.logger.Warn("POST /bookings - No availability: slug=%s, date=%s, start=%s", slug, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgNoAvailability)

		case errors.Is(err, createBooking.ErrProviderNotFound):
			h.logger.Warn("POST /bookings - Provider not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: slug=%s, service_id=%d", slug, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrSlotInPast):
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, txmanager.ErrBusy), errors.Is(err, txmanager.ErrLockTimeout):
			h.logger.Warn("POST /bookings - Busy: slug=%s, error=%v", slug, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgBusy)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, slug=%s, status=%s",
		result.BookingID, slug, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
