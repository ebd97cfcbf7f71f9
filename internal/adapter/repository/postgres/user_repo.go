package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/infrastructure/postgres/generated"
)

const pgErrUniqueViolation = "23505"

// UserRepository implements user persistence
type UserRepository struct {
	queries *generated.Queries
}

// NewUserRepository creates a new user repository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return newUserRepository(pool)
}

func newUserRepository(db generated.DBTX) *UserRepository {
	return &UserRepository{queries: generated.New(db)}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.queries.CreateUser(ctx, generated.CreateUserParams{
		ID:        user.ID,
		Name:      user.Name,
		Email:     stringToPgText(user.Email),
		CreatedAt: timeToPgTimestamptz(user.CreatedAt),
	})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return domain.ErrUserExists
	}

	return err
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row, err := r.queries.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return rowToUser(row), nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row, err := r.queries.GetUserByEmail(ctx, stringToPgText(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return rowToUser(row), nil
}

// GetByIDs retrieves the users that exist among ids
func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.queries.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, rowToUser(row))
	}

	return users, nil
}

// List retrieves users with pagination
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	rows, err := r.queries.ListUsers(ctx, generated.ListUsersParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, rowToUser(row))
	}

	return users, nil
}

func rowToUser(row generated.User) *domain.User {
	return &domain.User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email.String,
		CreatedAt: row.CreatedAt.Time,
	}
}
