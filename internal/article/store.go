package article

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// Store is the persistence contract for articles.
type Store interface {
	Create(ctx context.Context, title, content string) (*model.Article, error)
	GetAll(ctx context.Context) ([]*model.Article, error)
	GetByID(ctx context.Context, id int64) (*model.Article, error)
	Update(ctx context.Context, id int64, title, content string) (*model.Article, error)
	DeleteByID(ctx context.Context, id int64) error
	// Transaction runs fn against a Store bound to one unit of work. The
	// work is committed when fn returns nil and rolled back otherwise.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// Clock returns the current time. Stores use it for timestamps.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// MemoryStore keeps articles in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	now    Clock
	nextID int64
	rows   map[int64]*model.Article
}

func NewMemoryStore(now Clock) *MemoryStore {
	if now == nil {
		now = systemClock
	}

	return &MemoryStore{
		now:    now,
		nextID: 1,
		rows:   make(map[int64]*model.Article),
	}
}

func (s *MemoryStore) Create(ctx context.Context, title, content string) (*model.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return memTx{s}.Create(ctx, title, content)
}

func (s *MemoryStore) GetAll(ctx context.Context) ([]*model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return memTx{s}.GetAll(ctx)
}

func (s *MemoryStore) GetByID(ctx context.Context, id int64) (*model.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return memTx{s}.GetByID(ctx, id)
}

func (s *MemoryStore) Update(ctx context.Context, id int64, title, content string) (*model.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return memTx{s}.Update(ctx, id, title, content)
}

func (s *MemoryStore) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return memTx{s}.DeleteByID(ctx, id)
}

// Transaction holds the write lock for the duration of fn and restores
// the previous rows if fn fails.
func (s *MemoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[int64]model.Article, len(s.rows))
	for id, a := range s.rows {
		snapshot[id] = *a
	}
	nextID := s.nextID

	if err := fn(memTx{s}); err != nil {
		s.rows = make(map[int64]*model.Article, len(snapshot))
		for id := range snapshot {
			a := snapshot[id]
			s.rows[id] = &a
		}
		s.nextID = nextID

		return err
	}

	return nil
}

// memTx operates on a MemoryStore whose lock is already held.
type memTx struct {
	s *MemoryStore
}

func (t memTx) Create(_ context.Context, title, content string) (*model.Article, error) {
	now := t.s.now()
	article := model.NewArticle(title, content)
	article.ID = t.s.nextID
	article.CreatedAt = now
	article.UpdatedAt = now

	t.s.nextID++
	t.s.rows[article.ID] = article
	out := *article

	return &out, nil
}

func (t memTx) GetAll(_ context.Context) ([]*model.Article, error) {
	articles := make([]*model.Article, 0, len(t.s.rows))
	for _, a := range t.s.rows {
		out := *a
		articles = append(articles, &out)
	}

	sort.Slice(articles, func(i, j int) bool { return articles[i].ID < articles[j].ID })

	return articles, nil
}

func (t memTx) GetByID(_ context.Context, id int64) (*model.Article, error) {
	a, ok := t.s.rows[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	out := *a

	return &out, nil
}

func (t memTx) Update(_ context.Context, id int64, title, content string) (*model.Article, error) {
	a, ok := t.s.rows[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}

	a.Update(title, content)
	a.UpdatedAt = t.s.now()
	out := *a

	return &out, nil
}

func (t memTx) DeleteByID(_ context.Context, id int64) error {
	delete(t.s.rows, id)

	return nil
}

func (t memTx) Transaction(_ context.Context, fn func(tx Store) error) error {
	return fn(t)
}
