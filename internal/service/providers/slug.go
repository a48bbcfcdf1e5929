package providers

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/clockly/booking-service/internal/domain"
)

// maxSlugAttempts предел перебора числовых суффиксов при коллизии slug
const maxSlugAttempts = 100

// slugify приводит отображаемое имя к url-безопасному виду:
// нижний регистр, последовательности не-буквенно-цифровых символов
// заменяются одним дефисом
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // подавляет ведущий дефис

	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteRune('-')
			lastHyphen = true
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if len(slug) > domain.MaxSlugLength {
		slug = strings.TrimSuffix(slug[:domain.MaxSlugLength], "-")
	}
	return slug
}

// generateSlug подбирает свободный slug: базовый вариант, затем
// числовые суффиксы -2, -3 и так далее
func (s *Service) generateSlug(ctx context.Context, displayName string) (string, error) {
	base := slugify(displayName)
	if base == "" {
		return "", fmt.Errorf("%w: display name has no usable characters", ErrInvalidInput)
	}

	candidate := base
	for attempt := 2; attempt <= maxSlugAttempts; attempt++ {
		exists, err := s.providerRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("%w: generateSlug - check slug: %v", ErrInternal, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}

	return "", fmt.Errorf("%w: %s", ErrSlugUnavailable, base)
}
