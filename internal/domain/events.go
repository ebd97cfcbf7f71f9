package domain

import "time"

// Event types
const (
	EventTypeExpenseCreated  = "expense.created"
	EventTypePaymentRecorded = "payment.recorded"
	EventTypePaymentSettled  = "payment.settled"
)

// Aggregate types
const (
	AggregateTypeExpense = "expense"
	AggregateTypePayment = "payment"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// ExpenseCreatedEvent payload
type ExpenseCreatedEvent struct {
	ExpenseID     string            `json:"expense_id"`
	EventID       string            `json:"event_id"`
	PayerID       string            `json:"payer_id"`
	Amount        string            `json:"amount"`
	SplitStrategy string            `json:"split_strategy"`
	Shares        map[string]string `json:"shares"`
}

// PaymentRecordedEvent payload
type PaymentRecordedEvent struct {
	PaymentID  string `json:"payment_id"`
	EventID    string `json:"event_id"`
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	Amount     string `json:"amount"`
	Settled    bool   `json:"settled"`
}

// PaymentSettledEvent payload
type PaymentSettledEvent struct {
	PaymentID string `json:"payment_id"`
	EventID   string `json:"event_id"`
	Amount    string `json:"amount"`
	SettledAt string `json:"settled_at"`
}

// ToPayload flattens an event payload into the outbox map form.
func (e ExpenseCreatedEvent) ToPayload() map[string]any {
	shares := make(map[string]any, len(e.Shares))
	for k, v := range e.Shares {
		shares[k] = v
	}
	return map[string]any{
		"expense_id":     e.ExpenseID,
		"event_id":       e.EventID,
		"payer_id":       e.PayerID,
		"amount":         e.Amount,
		"split_strategy": e.SplitStrategy,
		"shares":         shares,
	}
}

// ToPayload flattens an event payload into the outbox map form.
func (e PaymentRecordedEvent) ToPayload() map[string]any {
	return map[string]any{
		"payment_id":   e.PaymentID,
		"event_id":     e.EventID,
		"from_user_id": e.FromUserID,
		"to_user_id":   e.ToUserID,
		"amount":       e.Amount,
		"settled":      e.Settled,
	}
}

// ToPayload flattens an event payload into the outbox map form.
func (e PaymentSettledEvent) ToPayload() map[string]any {
	return map[string]any{
		"payment_id": e.PaymentID,
		"event_id":   e.EventID,
		"amount":     e.Amount,
		"settled_at": e.SettledAt,
	}
}
