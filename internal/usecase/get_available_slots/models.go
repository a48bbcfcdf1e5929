package get_available_slots

import (
	"time"

	"github.com/clockly/booking-service/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ProviderSlug string    // Публичный slug провайдера
	ServiceID    *int64    // ID услуги (опционально, без услуги берётся длительность по умолчанию)
	Date         time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ProviderSlug    string    // Slug провайдера
	Date            time.Time // Дата, на которую запрашивались слоты
	ServiceID       *int64    // ID услуги, если была указана
	DurationMinutes int       // Длительность слота в минутах
	Slots           []Slot    // Список доступных слотов
}

// Slot модель временного слота [Start, End)
// Слот advisory: он может быть занят конкурентным бронированием
// между запросом списка и попыткой аллокации
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}
