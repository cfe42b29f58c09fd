package article

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// GormStore persists articles in a relational database through gorm.
type GormStore struct {
	db   *gorm.DB
	now  Clock
	inTx bool
}

func NewGormStore(db *gorm.DB, now Clock) *GormStore {
	if now == nil {
		now = systemClock
	}

	return &GormStore{db: db, now: now}
}

func (s *GormStore) Create(ctx context.Context, title, content string) (*model.Article, error) {
	now := s.now()
	article := model.NewArticle(title, content)
	article.CreatedAt = now
	article.UpdatedAt = now

	if err := s.db.WithContext(ctx).Create(article).Error; err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	return article, nil
}

func (s *GormStore) GetAll(ctx context.Context) ([]*model.Article, error) {
	var articles []*model.Article
	if err := s.db.WithContext(ctx).Order("id").Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	return articles, nil
}

func (s *GormStore) GetByID(ctx context.Context, id int64) (*model.Article, error) {
	return s.get(s.db.WithContext(ctx), id)
}

func (s *GormStore) Update(ctx context.Context, id int64, title, content string) (*model.Article, error) {
	q := s.db.WithContext(ctx)
	// Row lock only matters within a transaction, and sqlite has none.
	if s.inTx && q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	article, err := s.get(q, id)
	if err != nil {
		return nil, err
	}

	article.Update(title, content)
	article.UpdatedAt = s.now()

	err = s.db.WithContext(ctx).Model(article).Updates(map[string]interface{}{
		"title":      article.Title,
		"content":    article.Content,
		"updated_at": article.UpdatedAt,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("update article %d: %w", id, err)
	}

	return article, nil
}

func (s *GormStore) DeleteByID(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&model.Article{}, id).Error; err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}

	return nil
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, now: s.now, inTx: true})
	})
}

func (s *GormStore) get(q *gorm.DB, id int64) (*model.Article, error) {
	var article model.Article
	if err := q.First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{ID: id}
		}

		return nil, fmt.Errorf("get article %d: %w", id, err)
	}

	return &article, nil
}
