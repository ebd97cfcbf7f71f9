package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/gosplit/internal/adapter/http/dto"
	"github.com/iho/gosplit/internal/domain"
)

type seedExpense struct {
	payer       int
	description string
	strategy    domain.SplitStrategy
	amount      string
	values      []string // per member, empty for equal splits
}

var (
	seedMembers = []dto.CreateUserRequest{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
		{Name: "Carol"},
	}

	seedExpenses = []seedExpense{
		{payer: 0, description: "Cabin rental", strategy: domain.SplitEqual, amount: "300.00"},
		{payer: 1, description: "Groceries", strategy: domain.SplitPercentage, amount: "90.00", values: []string{"50", "30", "20"}},
		{payer: 2, description: "Fuel", strategy: domain.SplitRatio, amount: "60.00", values: []string{"1", "1", "2"}},
	}
)

// seed creates a demo event through the API and returns its ID.
func seed(ctx context.Context, c *apiClient) (string, error) {
	userIDs := make([]string, len(seedMembers))
	for i, m := range seedMembers {
		var user dto.UserResponse
		if err := c.do(ctx, http.MethodPost, "/api/v1/users", m, &user); err != nil {
			return "", fmt.Errorf("create user %s: %w", m.Name, err)
		}
		userIDs[i] = user.ID
	}

	var event dto.EventResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/events", dto.EventRequest{
		Title:       "Weekend cabin trip",
		Description: "Demo data created by gosplit-cli seed",
		Location:    "Lake Tahoe",
	}, &event); err != nil {
		return "", fmt.Errorf("create event: %w", err)
	}

	for _, x := range seedExpenses {
		req := dto.CreateExpenseRequest{
			EventID:       event.ID,
			PayerID:       userIDs[x.payer],
			Description:   x.description,
			SplitStrategy: string(x.strategy),
			Amount:        decimal.RequireFromString(x.amount),
			Participants:  make([]dto.ParticipantRequest, len(userIDs)),
		}
		for i, id := range userIDs {
			req.Participants[i] = dto.ParticipantRequest{UserID: id}
			if len(x.values) > 0 {
				req.Participants[i].Value = decimal.NewNullDecimal(decimal.RequireFromString(x.values[i]))
			}
		}

		if err := c.do(ctx, http.MethodPost, "/api/v1/expenses", req, nil); err != nil {
			return "", fmt.Errorf("create expense %q: %w", x.description, err)
		}
	}

	if err := c.do(ctx, http.MethodPost, "/api/v1/payments", dto.RecordPaymentRequest{
		EventID:    event.ID,
		FromUserID: userIDs[1],
		ToUserID:   userIDs[0],
		Amount:     decimal.RequireFromString("50.00"),
	}, nil); err != nil {
		return "", fmt.Errorf("record payment: %w", err)
	}

	return event.ID, nil
}
