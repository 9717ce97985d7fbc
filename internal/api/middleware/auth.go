package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/punkajrapr/timegrid/internal/api/handlers"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// UserIDHeader заголовок с ID пользователя, проставляется API gateway
const UserIDHeader = "X-User-ID"

// Auth проверяет наличие корректного X-User-ID заголовка и кладёт
// ID пользователя в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, "missing "+UserIDHeader+" header")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "invalid "+UserIDHeader+" header")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID достаёт ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
