package model

import "time"

// Article data model. Rows live in the "articles" table; ID and the
// timestamps are assigned by the store.
type Article struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Article) TableName() string {
	return "articles"
}

// NewArticle builds an unsaved Article.
func NewArticle(title, content string) *Article {
	return &Article{Title: title, Content: content}
}

// Update replaces both editable fields.
func (a *Article) Update(title, content string) {
	a.Title = title
	a.Content = content
}
