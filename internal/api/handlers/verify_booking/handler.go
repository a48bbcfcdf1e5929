package verify_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/clockly/booking-service/internal/api/handlers"
	verifyBooking "github.com/clockly/booking-service/internal/usecase/verify_booking"
)

const (
	msgInvalidToken     = "некорректный или неизвестный токен подтверждения"
	msgTokenExpired     = "срок действия ссылки подтверждения истёк"
	msgBookingCancelled = "бронирование было отменено"
)

type Handler struct {
	useCase VerifyBookingUseCase
	logger  Logger
}

func NewHandler(useCase VerifyBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/verify/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["token"]

	token, err := uuid.Parse(raw)
	if err != nil {
		h.logger.Warn("GET /bookings/verify - Malformed token")
		handlers.RespondBadRequest(w, msgInvalidToken)
		return
	}

	result, err := h.useCase.Execute(r.Context(), verifyBooking.Request{Token: token})
	if err != nil {
		switch {
		case errors.Is(err, verifyBooking.ErrInvalidToken):
			h.logger.Warn("GET /bookings/verify - Unknown token")
			handlers.RespondBadRequest(w, msgInvalidToken)

		case errors.Is(err, verifyBooking.ErrTokenExpired):
			h.logger.Warn("GET /bookings/verify - Expired token")
			handlers.RespondError(w, http.StatusGone, msgTokenExpired)

		case errors.Is(err, verifyBooking.ErrBookingCancelled):
			handlers.RespondError(w, http.StatusConflict, msgBookingCancelled)

		default:
			h.logger.Error("GET /bookings/verify - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/verify - Booking %d verified (already=%t)", result.BookingID, result.AlreadyVerified)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
