package article

import (
	"context"

	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// Service exposes the article use cases on top of a Store.
type Service struct {
	store  Store
	logger *zap.SugaredLogger
}

func NewService(store Store, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Service{store: store, logger: logger}
}

// Save persists a new article and returns it with id and timestamps set.
func (s *Service) Save(ctx context.Context, title, content string) (*model.Article, error) {
	article, err := s.store.Create(ctx, title, content)
	if err != nil {
		return nil, err
	}
	s.logger.Debugw("article created", "id", article.ID)

	return article, nil
}

func (s *Service) FindAll(ctx context.Context) ([]*model.Article, error) {
	return s.store.GetAll(ctx)
}

// FindByID fails with a *NotFoundError carrying id when nothing matches.
func (s *Service) FindByID(ctx context.Context, id int64) (*model.Article, error) {
	return s.store.GetByID(ctx, id)
}

// Delete is a no-op for unknown ids.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.logger.Debugw("article deleted", "id", id)

	return nil
}

// Update replaces title and content of an existing article inside one
// transaction.
func (s *Service) Update(ctx context.Context, id int64, title, content string) (*model.Article, error) {
	var updated *model.Article

	err := s.store.Transaction(ctx, func(tx Store) error {
		article, err := tx.Update(ctx, id, title, content)
		if err != nil {
			return err
		}
		updated = article

		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debugw("article updated", "id", id)

	return updated, nil
}
