package article

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/errresponse"
)

type ctxKey int8

const ctxKeyArticleID ctxKey = iota

// ArticleCtx middleware parses the {articleID} URL parameter and places
// it on the request context. Anything but a positive decimal id stops
// here with a 400.
func (a *API) ArticleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "articleID")

		// ParseUint takes no sign; 63 bits keeps the id within int64.
		id, err := strconv.ParseUint(raw, 10, 63)
		if err != nil || id == 0 {
			a.render(w, r, errresponse.ErrInvalidRequest(fmt.Errorf("invalid article id %q", raw)))

			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyArticleID, int64(id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// articleID is only valid below ArticleCtx.
func articleID(r *http.Request) int64 {
	id, _ := r.Context().Value(ctxKeyArticleID).(int64)

	return id
}

func (a *API) render(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		a.logger.Errorw("render response", "error", err)
	}
}
