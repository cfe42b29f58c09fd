package user

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blog/internal/errresponse"
	"github.com/SergeyParamoshkin/blog/internal/model"
)

type ctxKey int8

const ctxKeyPrincipal ctxKey = iota

// Authenticated middleware restricts access to users presenting valid
// basic-auth credentials. The user is placed on the request context.
func Authenticated(svc *Service, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, password, ok := r.BasicAuth()
			if !ok {
				unauthorized(w, r, logger)

				return
			}

			u, err := svc.Authenticate(r.Context(), email, password)
			if err != nil {
				if !errors.Is(err, ErrInvalidCredentials) {
					logger.Errorw("authenticate", "error", err)
				}
				unauthorized(w, r, logger)

				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyPrincipal, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Principal returns the user set by Authenticated.
func Principal(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(ctxKeyPrincipal).(*model.User)

	return u, ok
}

func unauthorized(w http.ResponseWriter, r *http.Request, logger *zap.SugaredLogger) {
	w.Header().Set("WWW-Authenticate", `Basic realm="blog"`)
	if err := render.Render(w, r, errresponse.ErrUnauthorized); err != nil {
		logger.Errorw("render response", "error", err)
	}
}
