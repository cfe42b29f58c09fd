package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Store persists users through gorm.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create expects u.Password to already hold a hash.
func (s *Store) Create(ctx context.Context, u *model.User) error {
	taken, err := s.emailTaken(ctx, u.Email)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateEmail
	}

	// A concurrent signup can still win between the count and the insert;
	// the unique index on email catches it.
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		if taken, _ := s.emailTaken(ctx, u.Email); taken {
			return ErrDuplicateEmail
		}

		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.find(s.db.WithContext(ctx).Where("email = ?", email))
}

func (s *Store) emailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}

	return count > 0, nil
}

func (s *Store) find(q *gorm.DB) (*model.User, error) {
	var u model.User
	if err := q.First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("find user: %w", err)
	}

	return &u, nil
}

// Service registers and authenticates users.
type Service struct {
	store *Store
	cost  int
}

func NewService(store *Store) *Service {
	return &Service{store: store, cost: bcrypt.DefaultCost}
}

// Register hashes password and stores a new user under email.
func (s *Service) Register(ctx context.Context, email, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: string(hash),
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Authenticate returns the user whose password matches, or
// ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.store.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}
