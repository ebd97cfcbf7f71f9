package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gosplit/internal/domain"
	"github.com/iho/gosplit/internal/usecase"
)

// Money renders an amount with exactly two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(domain.MoneyScale)
}

// EventResponse represents an event in API responses.
type EventResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	ImageURL    string     `json:"image_url,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	Capacity    *int32     `json:"capacity,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EventFromDomain converts domain event to response.
func EventFromDomain(e *domain.Event) *EventResponse {
	return &EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		ImageURL:    e.ImageURL,
		StartsAt:    e.StartsAt,
		Capacity:    e.Capacity,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ListEventsResponse represents a page of events.
type ListEventsResponse struct {
	Events []*EventResponse `json:"events"`
	Total  int              `json:"total"`
}

// EventsFromDomain converts domain events to a list response.
func EventsFromDomain(events []*domain.Event) ListEventsResponse {
	out := make([]*EventResponse, len(events))
	for i, e := range events {
		out[i] = EventFromDomain(e)
	}
	return ListEventsResponse{Events: out, Total: len(out)}
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts domain user to response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

// ListUsersResponse represents a page of users.
type ListUsersResponse struct {
	Users []*UserResponse `json:"users"`
	Total int             `json:"total"`
}

// UsersFromDomain converts domain users to a list response.
func UsersFromDomain(users []*domain.User) ListUsersResponse {
	out := make([]*UserResponse, len(users))
	for i, u := range users {
		out[i] = UserFromDomain(u)
	}
	return ListUsersResponse{Users: out, Total: len(out)}
}

// ShareResponse is one participant's portion of an expense.
type ShareResponse struct {
	UserID string  `json:"user_id"`
	Amount string  `json:"amount"`
	Value  *string `json:"value,omitempty"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID            string          `json:"id"`
	EventID       string          `json:"event_id"`
	PayerID       string          `json:"payer_id"`
	Amount        string          `json:"amount"`
	Description   string          `json:"description"`
	SplitStrategy string          `json:"split_strategy"`
	Shares        []ShareResponse `json:"shares"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ExpenseFromDomain converts domain expense to response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	shares := make([]ShareResponse, len(e.Shares))
	for i, s := range e.Shares {
		shares[i] = ShareResponse{UserID: s.UserID, Amount: Money(s.Amount)}
		if s.Value.Valid {
			v := s.Value.Decimal.String()
			shares[i].Value = &v
		}
	}

	return &ExpenseResponse{
		ID:            e.ID,
		EventID:       e.EventID,
		PayerID:       e.PayerID,
		Amount:        Money(e.Amount),
		Description:   e.Description,
		SplitStrategy: string(e.SplitStrategy),
		Shares:        shares,
		CreatedAt:     e.CreatedAt,
	}
}

// ListExpensesResponse represents an event's expenses.
type ListExpensesResponse struct {
	Expenses []*ExpenseResponse `json:"expenses"`
	Total    int                `json:"total"`
}

// ExpensesFromDomain converts domain expenses to a list response.
func ExpensesFromDomain(expenses []*domain.Expense) ListExpensesResponse {
	out := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = ExpenseFromDomain(e)
	}
	return ListExpensesResponse{Expenses: out, Total: len(out)}
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID         string     `json:"id"`
	EventID    string     `json:"event_id"`
	FromUserID string     `json:"from_user_id"`
	ToUserID   string     `json:"to_user_id"`
	Amount     string     `json:"amount"`
	Settled    bool       `json:"settled"`
	CreatedAt  time.Time  `json:"created_at"`
	SettledAt  *time.Time `json:"settled_at,omitempty"`
}

// PaymentFromDomain converts domain payment to response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:         p.ID,
		EventID:    p.EventID,
		FromUserID: p.FromUserID,
		ToUserID:   p.ToUserID,
		Amount:     Money(p.Amount),
		Settled:    p.Settled,
		CreatedAt:  p.CreatedAt,
		SettledAt:  p.SettledAt,
	}
}

// ListPaymentsResponse represents an event's payments.
type ListPaymentsResponse struct {
	Payments []*PaymentResponse `json:"payments"`
	Total    int                `json:"total"`
}

// PaymentsFromDomain converts domain payments to a list response.
func PaymentsFromDomain(payments []*domain.Payment) ListPaymentsResponse {
	out := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = PaymentFromDomain(p)
	}
	return ListPaymentsResponse{Payments: out, Total: len(out)}
}

// BalanceResponse is one member's net position. Negative means the member
// is owed money.
type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Balance string `json:"balance"`
}

// BalancesResponse lists an event's balances.
type BalancesResponse struct {
	EventID  string            `json:"event_id"`
	Balances []BalanceResponse `json:"balances"`
}

// BalancesFromDomain converts balance views to a response.
func BalancesFromDomain(eventID string, views []domain.BalanceView) BalancesResponse {
	out := make([]BalanceResponse, len(views))
	for i, v := range views {
		out[i] = BalanceResponse{UserID: v.UserID, Name: v.Name, Balance: Money(v.Balance)}
	}
	return BalancesResponse{EventID: eventID, Balances: out}
}

// TransferResponse is a suggested payment that settles debt.
type TransferResponse struct {
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	Amount     string `json:"amount"`
}

// SettlementResponse lists the transfers that settle an event.
type SettlementResponse struct {
	EventID   string             `json:"event_id"`
	Transfers []TransferResponse `json:"transfers"`
}

// SettlementFromDomain converts suggested transfers to a response.
func SettlementFromDomain(eventID string, transfers []domain.SettlementTransfer) SettlementResponse {
	out := make([]TransferResponse, len(transfers))
	for i, t := range transfers {
		out[i] = TransferResponse{FromUserID: t.FromUserID, ToUserID: t.ToUserID, Amount: Money(t.Amount)}
	}
	return SettlementResponse{EventID: eventID, Transfers: out}
}

// ConsistencyResponse reports whether an event's balances net to zero.
type ConsistencyResponse struct {
	EventID    string    `json:"event_id"`
	Total      string    `json:"total"`
	Members    int       `json:"members"`
	Consistent bool      `json:"consistent"`
	CheckedAt  time.Time `json:"checked_at"`
}

// ConsistencyFromReport converts a consistency report to a response.
func ConsistencyFromReport(r *usecase.ConsistencyReport) ConsistencyResponse {
	return ConsistencyResponse{
		EventID:    r.EventID,
		Total:      Money(r.Total),
		Members:    r.Members,
		Consistent: r.Consistent,
		CheckedAt:  r.CheckedAt,
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}
