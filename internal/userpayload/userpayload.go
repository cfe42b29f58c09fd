package userpayload

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// nolint
var validate = validator.New()

// SignupRequest is the body of POST /api/users.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Bind on SignupRequest will run after the unmarshalling is complete.
func (s *SignupRequest) Bind(r *http.Request) error {
	return validate.Struct(s)
}

// UserPayload is the public view of a user. The password hash never
// leaves the server.
type UserPayload struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	Authorities []string `json:"authorities"`
}

func NewUserPayloadResponse(u *model.User, authorities []string) *UserPayload {
	return &UserPayload{
		ID:          u.ID,
		Email:       u.Email,
		Authorities: authorities,
	}
}

func (u *UserPayload) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
