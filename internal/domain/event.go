package domain

import "time"

// Event groups the expenses and payments of one shared occasion.
type Event struct {
	ID          string
	Title       string
	Description string
	Location    string
	ImageURL    string
	StartsAt    *time.Time
	Capacity    *int32
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the event's user-supplied fields.
func (e *Event) Validate() error {
	if err := ValidateName(e.Title); err != nil {
		return err
	}

	if e.Capacity != nil && *e.Capacity < 0 {
		return ErrInvalidCapacity
	}

	return nil
}
