package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

// headerProviderID заголовок аутентификации провайдера
// Заполняется API-шлюзом после проверки сессии
const headerProviderID = "X-Provider-ID"

type contextKey string

const providerIDKey contextKey = "providerID"

// Auth middleware аутентификации провайдера
// Требует валидный X-Provider-ID и кладет его в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(headerProviderID)
		if raw == "" {
			respondUnauthorized(w, "отсутствует заголовок "+headerProviderID)
			return
		}

		providerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || providerID <= 0 {
			respondUnauthorized(w, "некорректный "+headerProviderID)
			return
		}

		ctx := context.WithValue(r.Context(), providerIDKey, providerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth кладет ID провайдера в контекст, если заголовок передан
// и валиден; запросы без заголовка пропускаются как анонимные.
// Используется на маршрутах, работающих и в публичном,
// и в провайдерском режиме
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(headerProviderID)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		providerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || providerID <= 0 {
			respondUnauthorized(w, "некорректный "+headerProviderID)
			return
		}

		ctx := context.WithValue(r.Context(), providerIDKey, providerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetProviderID извлекает ID провайдера из контекста запроса
func GetProviderID(ctx context.Context) (int64, bool) {
	providerID, ok := ctx.Value(providerIDKey).(int64)
	return providerID, ok
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
