package create_booking

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("create_booking: provider not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrSlotTaken возвращается, когда запрошенный слот пересекается
	// с существующим активным бронированием или перерывом
	ErrSlotTaken = errors.New("create_booking: slot already taken")

	// ErrNoAvailability возвращается, когда слот не покрыт ни одним
	// активным окном доступности
	ErrNoAvailability = errors.New("create_booking: slot outside availability")

	// ErrSlotInPast возвращается при попытке бронирования на прошедшее время
	ErrSlotInPast = errors.New("create_booking: slot is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
