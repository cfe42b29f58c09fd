package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blog/internal/errresponse"
	"github.com/SergeyParamoshkin/blog/internal/userpayload"
)

// API serves /api/users.
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

func (a *API) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", a.Signup) // POST /api/users

	return r
}

// Signup registers a new user and returns its public view.
func (a *API) Signup(w http.ResponseWriter, r *http.Request) {
	data := &userpayload.SignupRequest{}
	if err := render.Bind(r, data); err != nil {
		a.render(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	u, err := a.service.Register(r.Context(), data.Email, data.Password)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			a.render(w, r, errresponse.ErrConflict(err))

			return
		}
		a.logger.Errorw("register user", "error", err)
		a.render(w, r, errresponse.ErrInternal(err))

		return
	}

	render.Status(r, http.StatusCreated)
	a.render(w, r, userpayload.NewUserPayloadResponse(u, Policy(u).Authorities))
}

func (a *API) render(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		a.logger.Errorw("render response", "error", err)
	}
}
