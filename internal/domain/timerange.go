package domain

import (
	"fmt"

	"github.com/clockly/booking-service/pkg/types"
)

// TimeRange полуоткрытый интервал [Start, End) в пределах одной даты
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// NewTimeRange создает интервал с проверкой start < end
func NewTimeRange(start, end types.TimeString) (TimeRange, error) {
	if err := start.Validate(); err != nil {
		return TimeRange{}, err
	}
	if err := end.Validate(); err != nil {
		return TimeRange{}, err
	}
	if !start.IsBefore(end) {
		return TimeRange{}, fmt.Errorf("domain: invalid time range %s-%s: start must be before end", start, end)
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps проверяет пересечение двух интервалов
// Пересечение есть только при строгих неравенствах: a.Start < b.End И a.End > b.Start
// Граничащие интервалы (конец одного равен началу другого) НЕ пересекаются
//
// Этот предикат единственный на весь сервис: он используется для проверок
// бронирование-бронирование, бронирование-blackout и в джобах очистки.
// Любое расхождение в этой проверке приводит либо к двойным бронированиям,
// либо к ложным отказам
func Overlaps(a, b TimeRange) bool {
	return a.Start.IsBefore(b.End) && a.End.IsAfter(b.Start)
}

// Contains проверяет, что интервал inner полностью лежит внутри outer
// Совпадение границ допустимо: [09:00,12:00) содержит [09:00,10:00)
func (r TimeRange) Contains(inner TimeRange) bool {
	return !r.Start.IsAfter(inner.Start) && !r.End.IsBefore(inner.End)
}

// ComputeEnd вычисляет время конца по началу и длительности услуги
// Единственное место, где выводится конец бронирования: конец никогда
// не берётся из клиентского ввода и пересчитывается при каждом изменении начала
func ComputeEnd(start types.TimeString, durationMinutes int) (types.TimeString, error) {
	if durationMinutes <= 0 {
		return "", fmt.Errorf("domain: invalid duration %d minutes", durationMinutes)
	}
	return start.AddMinutes(durationMinutes)
}
