package domain

import (
	"time"

	"github.com/google/uuid"
)

// VerificationToken одноразовый токен подтверждения бронирования
// Отправляется клиенту в письме в виде ссылки; действует VerificationTokenTTL
type VerificationToken struct {
	ID        int64
	BookingID int64
	Email     string
	Token     uuid.UUID
	Verified  bool
	CreatedAt time.Time
}

// IsExpired returns true if the token is past its TTL at the given moment
func (t *VerificationToken) IsExpired(now time.Time) bool {
	return now.After(t.CreatedAt.Add(VerificationTokenTTL))
}
