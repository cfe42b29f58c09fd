package articleresponse

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// ArticleResponse is the full Article payload returned by create and update.
type ArticleResponse struct {
	*model.Article
}

func NewArticleResponse(article *model.Article) *ArticleResponse {
	return &ArticleResponse{Article: article}
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// ArticleSummary is the title/content projection used by the read
// endpoints.
type ArticleSummary struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func NewArticleSummary(article *model.Article) *ArticleSummary {
	return &ArticleSummary{
		Title:   article.Title,
		Content: article.Content,
	}
}

func (rd *ArticleSummary) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func NewArticleListResponse(articles []*model.Article) []render.Renderer {
	list := []render.Renderer{}
	for _, article := range articles {
		list = append(list, NewArticleSummary(article))
	}

	return list
}
