package domain

import "time"

// Параметры генерации слотов
const (
	// SlotGranularityMinutes шаг перебора кандидатов внутри окна доступности
	SlotGranularityMinutes = 30

	// DefaultServiceDurationMinutes длительность по умолчанию,
	// когда слоты запрошены без указания услуги
	DefaultServiceDurationMinutes = 60
)

// Параметры verification gate и retention
const (
	// VerificationTokenTTL время жизни токена подтверждения бронирования
	VerificationTokenTTL = 30 * time.Minute

	// PendingRetention pending-бронирования старше этого срока удаляются джобой очистки
	PendingRetention = 15 * time.Minute

	// BookingRetention бронирования, завершившиеся раньше этого срока,
	// удаляются независимо от статуса
	BookingRetention = 30 * 24 * time.Hour

	// ReminderLookahead окно напоминаний: напоминание получают бронирования,
	// начинающиеся в ближайшие ReminderLookahead и ещё не отмеченные was_reminded
	ReminderLookahead = 120 * time.Minute
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxCustomerNameLength     = 50
	MaxCustomerPhoneLength    = 20
	MaxNoteLength             = 500
	MaxBlackoutReasonLength   = 100
	MaxSlugLength             = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, занимающие время в расписании
// Используются при проверке пересечений и генерации слотов
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
