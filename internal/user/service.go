package user

import (
	"context"
	"errors"
	"strings"

	"github.com/hruskam/roomledger/internal/ledger"
)

// Common errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("this email is already registered")
	ErrInvalidInput = errors.New("name and email are required")
)

// Service handles user business logic
type Service struct {
	repo *Repository
}

// NewService creates a new user service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new user
func (s *Service) Create(ctx context.Context, req *CreateUserRequest) (*ledger.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	return s.repo.Create(ctx, name, email)
}

// GetByID retrieves a user by id
func (s *Service) GetByID(ctx context.Context, id int64) (*ledger.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// List retrieves all users
func (s *Service) List(ctx context.Context) ([]*ledger.User, error) {
	return s.repo.List(ctx)
}
