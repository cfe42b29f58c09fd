package article

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, store Store) http.Handler {
	t.Helper()

	api := NewAPI(NewService(store, nil), nil)

	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Mount("/api/articles", api.Routes())

	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestAPICreateThenUpdateArticle(t *testing.T) {
	store := newGormStore(t, newStepClock().Now)
	h := newTestRouter(t, store)

	rec := do(t, h, http.MethodPost, "/api/articles", `{"title":"title","content":"content"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "title", created["title"])
	assert.Equal(t, "content", created["content"])
	assert.Contains(t, created, "id")
	assert.Contains(t, created, "createdAt")
	assert.Contains(t, created, "updatedAt")

	rows, err := store.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "title", rows[0].Title)
	assert.Equal(t, "content", rows[0].Content)
	id := rows[0].ID

	rec = do(t, h, http.MethodPut, fmt.Sprintf("/api/articles/%d", id), `{"title":"new Title","content":"new Content"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "new Title", updated["title"])
	assert.EqualValues(t, id, updated["id"])

	got, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "new Title", got.Title)
	assert.Equal(t, "new Content", got.Content)
}

func TestAPIListReturnsTitleContentProjection(t *testing.T) {
	h := newTestRouter(t, NewMemoryStore(nil))

	for _, body := range []string{
		`{"title":"first","content":"one"}`,
		`{"title":"second","content":"two"}`,
	} {
		require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/articles", body).Code)
	}

	rec := do(t, h, http.MethodGet, "/api/articles", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, map[string]interface{}{"title": "first", "content": "one"}, list[0])
	assert.Equal(t, map[string]interface{}{"title": "second", "content": "two"}, list[1])
}

func TestAPIGetArticle(t *testing.T) {
	h := newTestRouter(t, NewMemoryStore(nil))
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/articles", `{"title":"t","content":"c"}`).Code)

	rec := do(t, h, http.MethodGet, "/api/articles/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"title":"t","content":"c"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/articles/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":"Resource not found.","error":"not found: 2"}`, rec.Body.String())
}

func TestAPIUpdateMissingArticle(t *testing.T) {
	h := newTestRouter(t, NewMemoryStore(nil))

	rec := do(t, h, http.MethodPut, "/api/articles/5", `{"title":"t","content":"c"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPIDeleteIsAlwaysOK(t *testing.T) {
	h := newTestRouter(t, NewMemoryStore(nil))
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/articles", `{"title":"t","content":"c"}`).Code)

	rec := do(t, h, http.MethodDelete, "/api/articles/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/api/articles/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/articles/1", "").Code)
}

func TestAPIRejectsBadInput(t *testing.T) {
	h := newTestRouter(t, NewMemoryStore(nil))

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"missing content", http.MethodPost, "/api/articles", `{"title":"t"}`},
		{"malformed body", http.MethodPost, "/api/articles", `{"title":`},
		{"non numeric id", http.MethodGet, "/api/articles/abc", ""},
		{"signed id", http.MethodGet, "/api/articles/+5", ""},
		{"zero id", http.MethodGet, "/api/articles/0", ""},
		{"negative id", http.MethodDelete, "/api/articles/-1", ""},
		{"id overflow", http.MethodGet, "/api/articles/9223372036854775808", ""},
		{"empty update", http.MethodPut, "/api/articles/1", `{"title":"","content":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
