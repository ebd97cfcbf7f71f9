package handler

import (
	"context"
	"net/http"

	"github.com/iho/gosplit/internal/adapter/http/dto"
	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/usecase"
)

// UserService defines the behavior needed by UserHandler.
type UserService interface {
	CreateUser(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userUC UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userUC UserService) *UserHandler {
	return &UserHandler{userUC: userUC}
}

// Create creates a new user.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	user, err := h.userUC.CreateUser(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err, "failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, dto.UserFromDomain(user))
}

// Get retrieves a user by ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "user")
	if !ok {
		return
	}

	user, err := h.userUC.GetUser(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get user")
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}

// List lists users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUC.ListUsers(r.Context(), parseIntQuery(r, "limit", 20), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeDomainError(w, err, "failed to list users")
		return
	}

	writeJSON(w, http.StatusOK, dto.UsersFromDomain(users))
}
