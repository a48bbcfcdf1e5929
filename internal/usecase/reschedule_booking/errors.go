package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому провайдеру
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrCannotReschedule возвращается для отменённых бронирований
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrSlotTaken возвращается, когда новый слот пересекается
	// с другим активным бронированием или перерывом
	ErrSlotTaken = errors.New("reschedule_booking: slot already taken")

	// ErrNoAvailability возвращается, когда новый слот не покрыт
	// ни одним активным окном доступности
	ErrNoAvailability = errors.New("reschedule_booking: slot outside availability")

	// ErrSlotInPast возвращается при попытке переноса на прошедшее время
	ErrSlotInPast = errors.New("reschedule_booking: slot is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
