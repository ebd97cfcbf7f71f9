package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iho/gosplit/internal/domain"
)

// UserUseCase handles user management operations
type UserUseCase struct {
	userRepo UserRepository
	idGen    IDGenerator
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(userRepo UserRepository, idGen IDGenerator) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		idGen:    idGen,
	}
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	Name  string
	Email string
}

// CreateUser registers a new member
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	user := &domain.User{
		Name:  strings.TrimSpace(input.Name),
		Email: strings.ToLower(strings.TrimSpace(input.Email)),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if user.Email != "" {
		existing, err := uc.userRepo.GetByEmail(ctx, user.Email)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrUserExists
		}
	}

	user.ID = uc.idGen.Generate()
	user.CreatedAt = time.Now().UTC()

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a user by ID
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// ListUsers lists all users with pagination
func (uc *UserUseCase) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	limit, offset, _ = domain.ValidatePagination(limit, offset)
	return uc.userRepo.List(ctx, limit, offset)
}
