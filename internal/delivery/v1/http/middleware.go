package http

import (
	"context"
	"net/http"
	"time"

	"github.com/DRSN-tech/marketplace/internal/usecase"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/DRSN-tech/marketplace/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
)

type identityCtxKey struct{}

type tokenCtxKey struct{}

func withIdentity(ctx context.Context, identity *usecase.Identity, token string) context.Context {
	ctx = context.WithValue(ctx, identityCtxKey{}, identity)
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

// identityFromCtx возвращает пользователя, положенного в контекст RequireAuth.
func identityFromCtx(ctx context.Context) *usecase.Identity {
	identity, _ := ctx.Value(identityCtxKey{}).(*usecase.Identity)
	return identity
}

func tokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(tokenCtxKey{}).(string)
	return token
}

// RequireAuth пропускает запрос дальше только с действующим bearer-токеном.
func RequireAuth(authUC usecase.AuthUC, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				respondError(log, w, r, e.ErrMissingToken)
				return
			}

			identity, err := authUC.ResolveIdentity(r.Context(), token)
			if err != nil {
				respondError(log, w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity, token)))
		})
	}
}

// RequestLogger пишет в лог метод, путь, статус и длительность каждого запроса.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Infof("%s %s -> %d (%d bytes) in %s request_id=%s",
				r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start), middleware.GetReqID(r.Context()))
		})
	}
}
