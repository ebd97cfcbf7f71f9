package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/infrastructure/postgres/generated"
)

// EventRepository implements usecase.EventRepository.
type EventRepository struct {
	queries *generated.Queries
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return newEventRepository(pool)
}

func newEventRepository(db generated.DBTX) *EventRepository {
	return &EventRepository{queries: generated.New(db)}
}

// Create creates a new event.
func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	return r.queries.CreateEvent(ctx, generated.CreateEventParams{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		ImageUrl:    event.ImageURL,
		StartsAt:    timePtrToPgTimestamptz(event.StartsAt),
		Capacity:    int32PtrToPgInt4(event.Capacity),
		CreatedAt:   timeToPgTimestamptz(event.CreatedAt),
		UpdatedAt:   timeToPgTimestamptz(event.UpdatedAt),
	})
}

// GetByID retrieves an event by ID.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row, err := r.queries.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}

		return nil, err
	}

	return rowToEvent(row), nil
}

// List lists events, newest first.
func (r *EventRepository) List(ctx context.Context, limit, offset int) ([]*domain.Event, error) {
	rows, err := r.queries.ListEvents(ctx, generated.ListEventsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	events := make([]*domain.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, rowToEvent(row))
	}

	return events, nil
}

// Update overwrites the editable fields of an event.
func (r *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	n, err := r.queries.UpdateEvent(ctx, generated.UpdateEventParams{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		ImageUrl:    event.ImageURL,
		StartsAt:    timePtrToPgTimestamptz(event.StartsAt),
		Capacity:    int32PtrToPgInt4(event.Capacity),
		UpdatedAt:   timeToPgTimestamptz(event.UpdatedAt),
	})
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.ErrEventNotFound
	}

	return nil
}

// Delete removes an event; expenses and payments cascade.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	n, err := r.queries.DeleteEvent(ctx, id)
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.ErrEventNotFound
	}

	return nil
}

func rowToEvent(row generated.Event) *domain.Event {
	return &domain.Event{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Location:    row.Location,
		ImageURL:    row.ImageUrl,
		StartsAt:    pgTimestamptzToPtr(row.StartsAt),
		Capacity:    pgInt4ToPtr(row.Capacity),
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}
