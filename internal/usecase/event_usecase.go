package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/gosplit/internal/domain"
)

// EventUseCase handles event management.
type EventUseCase struct {
	eventRepo EventRepository
	idGen     IDGenerator
	logger    zerolog.Logger
}

// NewEventUseCase creates a new EventUseCase.
func NewEventUseCase(eventRepo EventRepository, idGen IDGenerator, logger zerolog.Logger) *EventUseCase {
	return &EventUseCase{
		eventRepo: eventRepo,
		idGen:     idGen,
		logger:    logger,
	}
}

// EventInput carries the user-editable fields of an event.
type EventInput struct {
	StartsAt    *time.Time
	Capacity    *int32
	Title       string
	Description string
	Location    string
	ImageURL    string
}

func (in EventInput) apply(event *domain.Event) {
	event.Title = strings.TrimSpace(in.Title)
	event.Description = in.Description
	event.Location = in.Location
	event.ImageURL = in.ImageURL
	event.StartsAt = in.StartsAt
	event.Capacity = in.Capacity
}

// CreateEvent creates a new event.
func (uc *EventUseCase) CreateEvent(ctx context.Context, input EventInput) (*domain.Event, error) {
	now := time.Now().UTC()

	event := &domain.Event{
		ID:        uc.idGen.Generate(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	input.apply(event)

	if err := event.Validate(); err != nil {
		return nil, err
	}

	if err := uc.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	uc.logger.Info().Str("event_id", event.ID).Str("title", event.Title).Msg("event created")

	return event, nil
}

// GetEvent retrieves an event by ID.
func (uc *EventUseCase) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return uc.eventRepo.GetByID(ctx, id)
}

// ListEventsInput represents input for listing events.
type ListEventsInput struct {
	Limit  int
	Offset int
}

// ListEvents lists events with pagination.
func (uc *EventUseCase) ListEvents(ctx context.Context, input ListEventsInput) ([]*domain.Event, error) {
	limit, offset, _ := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.eventRepo.List(ctx, limit, offset)
}

// UpdateEvent replaces the editable fields of an existing event.
func (uc *EventUseCase) UpdateEvent(ctx context.Context, id string, input EventInput) (*domain.Event, error) {
	event, err := uc.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	input.apply(event)
	event.UpdatedAt = time.Now().UTC()

	if err := event.Validate(); err != nil {
		return nil, err
	}

	if err := uc.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// DeleteEvent removes an event together with its expenses and payments.
func (uc *EventUseCase) DeleteEvent(ctx context.Context, id string) error {
	if err := uc.eventRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info().Str("event_id", id).Msg("event deleted")

	return nil
}
