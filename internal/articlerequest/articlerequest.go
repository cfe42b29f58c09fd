package articlerequest

import (
	"net/http"

	"github.com/go-playground/validator/v10"
)

// nolint
var validate = validator.New()

// ArticleRequest is the request payload for creating and updating an
// Article. Any id or timestamp sent by the client is ignored.
type ArticleRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// Bind runs after the body is decoded.
func (a *ArticleRequest) Bind(r *http.Request) error {
	return validate.Struct(a)
}
