package domain

import "time"

// Provider represents a service-offering account that owns schedule data
type Provider struct {
	ID          int64
	Slug        string // уникальный человекочитаемый идентификатор в публичных URL, неизменяемый
	DisplayName string
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Service represents a bookable service offered by a provider
type Service struct {
	ID              int64
	ProviderID      int64
	Name            string
	Description     string
	DurationMinutes int
	Price           float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasValidDuration returns true if the service duration is within business limits
func (s *Service) HasValidDuration() bool {
	return s.DurationMinutes >= MinServiceDurationMinutes && s.DurationMinutes <= MaxServiceDurationMinutes
}
