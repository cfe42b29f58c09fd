package article

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/blog/internal/database"
)

// stepClock advances one second on every call.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(time.Second)

	return c.now
}

func newGormStore(t *testing.T, clock Clock) *GormStore {
	t.Helper()

	db, err := database.Open(database.DriverSQLite, filepath.Join(t.TempDir(), "blog.db"))
	require.NoError(t, err)

	return NewGormStore(db, clock)
}

func eachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryStore(newStepClock().Now))
	})
	t.Run("gorm", func(t *testing.T) {
		fn(t, newGormStore(t, newStepClock().Now))
	})
}

func TestStoreCreateAssignsIDAndTimestamps(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		first, err := s.Create(ctx, "title", "content")
		require.NoError(t, err)
		second, err := s.Create(ctx, "other", "body")
		require.NoError(t, err)

		assert.NotZero(t, first.ID)
		assert.NotEqual(t, first.ID, second.ID)
		assert.False(t, first.CreatedAt.IsZero())
		assert.True(t, first.CreatedAt.Equal(first.UpdatedAt))

		got, err := s.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "title", got.Title)
		assert.Equal(t, "content", got.Content)
		assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))
	})
}

func TestStoreGetAllOrdersByID(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		for _, title := range []string{"a", "b", "c"} {
			_, err := s.Create(ctx, title, "content")
			require.NoError(t, err)
		}

		all, err := s.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "a", all[0].Title)
		assert.Equal(t, "c", all[2].Title)
		assert.Less(t, all[0].ID, all[1].ID)
		assert.Less(t, all[1].ID, all[2].ID)
	})
}

func TestStoreGetByIDMissing(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		_, err := s.GetByID(context.Background(), 42)

		var nf *NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, int64(42), nf.ID)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestStoreUpdate(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		created, err := s.Create(ctx, "title", "content")
		require.NoError(t, err)

		updated, err := s.Update(ctx, created.ID, "new Title", "new Content")
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "new Title", updated.Title)
		assert.Equal(t, "new Content", updated.Content)
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

		got, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "new Title", got.Title)
		assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
		assert.True(t, got.UpdatedAt.After(got.CreatedAt))

		_, err = s.Update(ctx, created.ID+100, "x", "y")
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestStoreDeleteIsIdempotent(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		created, err := s.Create(ctx, "title", "content")
		require.NoError(t, err)

		require.NoError(t, s.DeleteByID(ctx, created.ID))
		require.NoError(t, s.DeleteByID(ctx, created.ID))

		_, err = s.GetByID(ctx, created.ID)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestStoreTransactionRollsBack(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		created, err := s.Create(ctx, "title", "content")
		require.NoError(t, err)

		boom := errors.New("boom")
		err = s.Transaction(ctx, func(tx Store) error {
			if _, err := tx.Update(ctx, created.ID, "changed", "changed"); err != nil {
				return err
			}
			if _, err := tx.Create(ctx, "extra", "extra"); err != nil {
				return err
			}

			return boom
		})
		require.ErrorIs(t, err, boom)

		got, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "title", got.Title)
		assert.True(t, got.UpdatedAt.Equal(created.UpdatedAt))

		all, err := s.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore(nil)
	ctx := context.Background()

	created, err := s.Create(ctx, "title", "content")
	require.NoError(t, err)
	created.Title = "mutated"

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "title", got.Title)
}

func TestGormStoreSerializesConcurrentWrites(t *testing.T) {
	svc := NewService(newGormStore(t, nil), nil)
	ctx := context.Background()

	saved, err := svc.Save(ctx, "title", "content")
	require.NoError(t, err)

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, 2*writers)

	for i := 0; i < writers; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Update(ctx, saved.ID, fmt.Sprintf("title %d", i), fmt.Sprintf("content %d", i))
			errs <- err
		}(i)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Save(ctx, fmt.Sprintf("extra %d", i), "content")
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	all, err := svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, writers+1)

	got, err := svc.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	// Title and content always come from the same update.
	assert.Equal(t, strings.Replace(got.Title, "title", "content", 1), got.Content)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}
