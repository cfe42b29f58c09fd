package article

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blog/internal/articlerequest"
	"github.com/SergeyParamoshkin/blog/internal/articleresponse"
	"github.com/SergeyParamoshkin/blog/internal/errresponse"
)

// API maps the /api/articles routes onto a Service.
type API struct {
	service *Service
	logger  *zap.SugaredLogger
}

func NewAPI(service *Service, logger *zap.SugaredLogger) *API {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &API{service: service, logger: logger}
}

// Routes mounts under /api/articles. Extra middlewares wrap every route.
func (a *API) Routes(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares...)

	r.Get("/", a.ListArticles)   // GET /api/articles
	r.Post("/", a.CreateArticle) // POST /api/articles

	r.Route("/{articleID}", func(r chi.Router) {
		r.Use(a.ArticleCtx)
		r.Get("/", a.GetArticle)       // GET /api/articles/123
		r.Put("/", a.UpdateArticle)    // PUT /api/articles/123
		r.Delete("/", a.DeleteArticle) // DELETE /api/articles/123
	})

	return r
}

func (a *API) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := a.service.FindAll(r.Context())
	if err != nil {
		a.fail(w, r, err)

		return
	}

	if err := render.RenderList(w, r, articleresponse.NewArticleListResponse(articles)); err != nil {
		a.render(w, r, errresponse.ErrRender(err))
	}
}

// CreateArticle persists the posted Article and returns it
// back to the client as an acknowledgement.
func (a *API) CreateArticle(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		a.render(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	article, err := a.service.Save(r.Context(), data.Title, data.Content)
	if err != nil {
		a.fail(w, r, err)

		return
	}

	render.Status(r, http.StatusCreated)
	a.render(w, r, articleresponse.NewArticleResponse(article))
}

// GetArticle returns the title/content projection of one Article.
func (a *API) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := a.service.FindByID(r.Context(), articleID(r))
	if err != nil {
		a.fail(w, r, err)

		return
	}

	a.render(w, r, articleresponse.NewArticleSummary(article))
}

// UpdateArticle updates an existing Article in our persistent store.
func (a *API) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		a.render(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	article, err := a.service.Update(r.Context(), articleID(r), data.Title, data.Content)
	if err != nil {
		a.fail(w, r, err)

		return
	}

	a.render(w, r, articleresponse.NewArticleResponse(article))
}

// DeleteArticle answers 200 with an empty body whether or not the
// Article existed.
func (a *API) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := a.service.Delete(r.Context(), articleID(r)); err != nil {
		a.fail(w, r, err)

		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrNotFound) {
		a.render(w, r, errresponse.ErrNotFoundWith(err))

		return
	}

	a.logger.Errorw("article request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	a.render(w, r, errresponse.ErrInternal(err))
}
