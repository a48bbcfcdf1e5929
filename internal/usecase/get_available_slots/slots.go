package get_available_slots

import (
	"time"

	"github.com/clockly/booking-service/internal/domain"
	"github.com/clockly/booking-service/pkg/types"
)

// generateSlots генерирует доступные слоты по окнам доступности
// за вычетом бронирований и перерывов
//
// Каждое окно перебирается независимо с шагом domain.SlotGranularityMinutes,
// пока кандидат целиком помещается в окно. Кандидат отбрасывается, если:
// - он начинается в прошлом (для сегодняшней даты);
// - он пересекается с активным бронированием или перерывом (domain.Overlaps)
//
// Пересекающиеся окна доступности аддитивны и обрабатываются независимо,
// поэтому дубликаты слотов возможны и не удаляются - порядок слотов
// внутри окна всегда по возрастанию времени начала
func generateSlots(
	windows []*domain.AvailabilityWindow,
	bookings []*domain.Booking,
	blackouts []*domain.BlackoutWindow,
	durationMinutes int,
	date time.Time,
	now time.Time,
) []Slot {
	slots := make([]Slot, 0)

	if isDateInPast(date, now) {
		return slots
	}

	today := isSameDay(date, now)

	for _, window := range windows {
		current := window.StartTime

		for {
			end, err := current.AddMinutes(durationMinutes)
			if err != nil {
				// Кандидат пересекает полночь - окно исчерпано
				break
			}
			if end.IsAfter(window.EndTime) {
				break
			}

			if today && slotStartsInPast(date, current, now) {
				current = advance(current)
				if current.IsZero() {
					break
				}
				continue
			}

			candidate := domain.TimeRange{Start: current, End: end}
			if !overlapsAny(candidate, bookings, blackouts) {
				slots = append(slots, Slot{StartTime: current, EndTime: end})
			}

			current = advance(current)
			if current.IsZero() {
				break
			}
		}
	}

	return slots
}

// advance сдвигает кандидата на шаг генерации; возвращает пустое время на границе суток
func advance(current types.TimeString) types.TimeString {
	next, err := current.AddMinutes(domain.SlotGranularityMinutes)
	if err != nil {
		return ""
	}
	return next
}

// overlapsAny проверяет пересечение кандидата с активными бронированиями и перерывами
// Единый предикат domain.Overlaps - тот же, что использует аллокатор
func overlapsAny(candidate domain.TimeRange, bookings []*domain.Booking, blackouts []*domain.BlackoutWindow) bool {
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if domain.Overlaps(candidate, booking.Range()) {
			return true
		}
	}

	for _, blackout := range blackouts {
		if domain.Overlaps(candidate, blackout.Range()) {
			return true
		}
	}

	return false
}

// slotStartsInPast сравнивает полный момент начала кандидата с текущим временем
// Сравнение по усечённому до минут времени здесь недостаточно: при
// now = 09:00:30 слот 09:00 уже в прошлом, и аллокатор его отклонит,
// поэтому выдавать его нельзя
func slotStartsInPast(date time.Time, start types.TimeString, now time.Time) bool {
	minutes, err := start.Minutes()
	if err != nil {
		return false
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Add(time.Duration(minutes) * time.Minute).Before(now)
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
