package handler

import (
	"context"
	"net/http"

	"github.com/iho/gosplit/internal/adapter/http/dto"
	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/usecase"
)

// EventService defines the behavior needed by EventHandler.
type EventService interface {
	CreateEvent(ctx context.Context, input usecase.EventInput) (*domain.Event, error)
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	ListEvents(ctx context.Context, input usecase.ListEventsInput) ([]*domain.Event, error)
	UpdateEvent(ctx context.Context, id string, input usecase.EventInput) (*domain.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// EventHandler handles event-related HTTP requests.
type EventHandler struct {
	eventUC EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventUC EventService) *EventHandler {
	return &EventHandler{eventUC: eventUC}
}

// Create creates a new event.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.EventRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	event, err := h.eventUC.CreateEvent(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err, "failed to create event")
		return
	}

	writeJSON(w, http.StatusCreated, dto.EventFromDomain(event))
}

// Get retrieves an event by ID.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "event")
	if !ok {
		return
	}

	event, err := h.eventUC.GetEvent(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get event")
		return
	}

	writeJSON(w, http.StatusOK, dto.EventFromDomain(event))
}

// List lists events, newest first.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventUC.ListEvents(r.Context(), usecase.ListEventsInput{
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, err, "failed to list events")
		return
	}

	writeJSON(w, http.StatusOK, dto.EventsFromDomain(events))
}

// Update replaces an event's editable fields.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "event")
	if !ok {
		return
	}

	var req dto.EventRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	event, err := h.eventUC.UpdateEvent(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err, "failed to update event")
		return
	}

	writeJSON(w, http.StatusOK, dto.EventFromDomain(event))
}

// Delete removes an event with its expenses and payments.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "event")
	if !ok {
		return
	}

	if err := h.eventUC.DeleteEvent(r.Context(), id); err != nil {
		writeDomainError(w, err, "failed to delete event")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
