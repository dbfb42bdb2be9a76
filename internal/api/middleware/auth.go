package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/api/handlers"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
)

// Заголовки аутентификации, проставляются API-шлюзом
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type actorCtxKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth извлекает актора из заголовков запроса и кладет его в контекст.
// Запросы без корректных заголовков отклоняются с 401.
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idStr := r.Header.Get(HeaderUserID)
			roleStr := r.Header.Get(HeaderUserRole)

			if idStr == "" || roleStr == "" {
				logger.Warn("auth: missing %s or %s headers, path=%s", HeaderUserID, HeaderUserRole, r.URL.Path)
				handlers.RespondUnauthorized(w, "не указаны данные пользователя")
				return
			}

			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil || id <= 0 {
				logger.Warn("auth: invalid %s=%q, path=%s", HeaderUserID, idStr, r.URL.Path)
				handlers.RespondUnauthorized(w, "некорректный идентификатор пользователя")
				return
			}

			role := domain.ActorRole(roleStr)
			if !domain.ValidActorRole(role) {
				logger.Warn("auth: invalid %s=%q, path=%s", HeaderUserRole, roleStr, r.URL.Path)
				handlers.RespondUnauthorized(w, "некорректная роль пользователя")
				return
			}

			actor := domain.Actor{Role: role, ID: id}
			next.ServeHTTP(w, r.WithContext(ContextWithActor(r.Context(), actor)))
		})
	}
}

// ContextWithActor кладет актора в контекст
func ContextWithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, actor)
}

// ActorFromContext извлекает актора из контекста
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey{}).(domain.Actor)
	return actor, ok
}
