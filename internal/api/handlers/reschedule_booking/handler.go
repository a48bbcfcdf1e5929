package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/clockly/booking-service/internal/api/handlers"
	"github.com/clockly/booking-service/internal/api/middleware"
	rescheduleBooking "github.com/clockly/booking-service/internal/usecase/reschedule_booking"
	"github.com/clockly/booking-service/pkg/txmanager"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingProviderID  = "отсутствует ID провайдера"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgCannotReschedule   = "бронирование нельзя перенести"
	msgSlotTaken          = "выбранный временной слот уже занят"
	msgNoAvailability     = "выбранное время вне окон доступности провайдера"
	msgSlotInPast         = "нельзя перенести бронирование на прошедшее время"
	msgInvalidRequest     = "некорректные параметры запроса"
	msgBusy               = "сервис перегружен, повторите попытку"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	providerID, ok := middleware.GetProviderID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Missing provider ID")
		handlers.RespondUnauthorized(w, msgMissingProviderID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, providerID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Access denied: booking_id=%d, provider_id=%d", bookingID, providerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleBooking.ErrCannotReschedule):
			handlers.RespondError(w, http.StatusConflict, msgCannotReschedule)

		case errors.Is(err, rescheduleBooking.ErrSlotTaken):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Slot taken: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, rescheduleBooking.ErrNoAvailability):
			handlers.RespondError(w, http.StatusConflict, msgNoAvailability)

		case errors.Is(err, rescheduleBooking.ErrSlotInPast):
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, txmanager.ErrBusy), errors.Is(err, txmanager.ErrLockTimeout):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Busy: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgBusy)

		default:
			h.logger.Error("PATCH /bookings/{id}/reschedule - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reschedule - Booking rescheduled: booking_id=%d, date=%s, start=%s",
		result.BookingID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
