package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/usecase"
)

// EventRequest creates or fully replaces an event.
type EventRequest struct {
	Title       string     `json:"title"       validate:"required,max=255"`
	Description string     `json:"description" validate:"max=2000"`
	Location    string     `json:"location"    validate:"max=255"`
	ImageURL    string     `json:"image_url"   validate:"omitempty,url"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	Capacity    *int32     `json:"capacity,omitempty" validate:"omitempty,gte=0"`
}

// ToUseCaseInput converts to use case input.
func (r *EventRequest) ToUseCaseInput() usecase.EventInput {
	return usecase.EventInput{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		ImageURL:    r.ImageURL,
		StartsAt:    r.StartsAt,
		Capacity:    r.Capacity,
	}
}

// CreateUserRequest represents a request to create a user.
type CreateUserRequest struct {
	Name  string `json:"name"  validate:"required,max=255"`
	Email string `json:"email" validate:"omitempty,email"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{Name: r.Name, Email: r.Email}
}

// ParticipantRequest is one member sharing an expense. Value is the
// percentage or ratio weight and may be omitted for equal splits.
type ParticipantRequest struct {
	UserID string              `json:"user_id" validate:"required"`
	Value  decimal.NullDecimal `json:"value"`
}

// CreateExpenseRequest represents a request to create an expense.
type CreateExpenseRequest struct {
	EventID       string               `json:"event_id"       validate:"required"`
	PayerID       string               `json:"payer_id"       validate:"required"`
	Description   string               `json:"description"    validate:"max=500"`
	SplitStrategy string               `json:"split_strategy" validate:"required"`
	Amount        decimal.Decimal      `json:"amount"`
	Participants  []ParticipantRequest `json:"participants"   validate:"required,min=1,dive"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateExpenseRequest) ToUseCaseInput() (usecase.CreateExpenseInput, error) {
	strategy, err := domain.ParseSplitStrategy(r.SplitStrategy)
	if err != nil {
		return usecase.CreateExpenseInput{}, err
	}

	participants := make([]domain.ShareInput, len(r.Participants))
	for i, p := range r.Participants {
		participants[i] = domain.ShareInput{UserID: p.UserID, Value: p.Value}
	}

	return usecase.CreateExpenseInput{
		EventID:       r.EventID,
		PayerID:       r.PayerID,
		Description:   r.Description,
		SplitStrategy: strategy,
		Amount:        r.Amount,
		Participants:  participants,
	}, nil
}

// RecordPaymentRequest represents a request to record a payment.
type RecordPaymentRequest struct {
	EventID    string          `json:"event_id"     validate:"required"`
	FromUserID string          `json:"from_user_id" validate:"required"`
	ToUserID   string          `json:"to_user_id"   validate:"required,nefield=FromUserID"`
	Amount     decimal.Decimal `json:"amount"`
	Settled    *bool           `json:"settled,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordPaymentRequest) ToUseCaseInput() usecase.RecordPaymentInput {
	return usecase.RecordPaymentInput{
		EventID:    r.EventID,
		FromUserID: r.FromUserID,
		ToUserID:   r.ToUserID,
		Amount:     r.Amount,
		Settled:    r.Settled,
	}
}
