package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	http.Client
	Addr string
}

// Article is the full representation returned by create and update.
type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ArticleSummary is returned by the read endpoints.
type ArticleSummary struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type articleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

func (c *Client) Ping(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodGet, "/ping", nil)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

func (c *Client) CreateArticle(ctx context.Context, title, content string) (*Article, error) {
	var out Article
	if err := c.doJSON(ctx, http.MethodPost, "/api/articles", articleRequest{title, content}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) ListArticles(ctx context.Context) ([]ArticleSummary, error) {
	var out []ArticleSummary
	if err := c.doJSON(ctx, http.MethodGet, "/api/articles", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) GetArticle(ctx context.Context, id int64) (*ArticleSummary, error) {
	var out ArticleSummary
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/articles/%d", id), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateArticle(ctx context.Context, id int64, title, content string) (*Article, error) {
	var out Article
	path := fmt.Sprintf("/api/articles/%d", id)
	if err := c.doJSON(ctx, http.MethodPut, path, articleRequest{title, content}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteArticle(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/articles/%d", id), nil)

	return err
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	raw, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.Addr+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(raw))}
	}

	return raw, nil
}
