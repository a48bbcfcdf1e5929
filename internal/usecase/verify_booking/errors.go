package verify_booking

import "errors"

var (
	// ErrInvalidToken возвращается для неизвестного токена,
	// в том числе когда pending-бронирование уже удалено джобой очистки
	ErrInvalidToken = errors.New("verify_booking: invalid token")

	// ErrTokenExpired возвращается для токена с истёкшим TTL
	ErrTokenExpired = errors.New("verify_booking: token expired")

	// ErrBookingCancelled возвращается, когда бронирование отменено
	// до подтверждения
	ErrBookingCancelled = errors.New("verify_booking: booking cancelled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("verify_booking: internal error")
)
