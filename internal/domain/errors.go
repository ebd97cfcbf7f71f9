package domain

import "errors"

var (
	// Allocation errors
	ErrInvalidInput = errors.New("invalid input")

	// Settlement errors
	ErrInconsistentBalances = errors.New("balances do not sum to zero")

	// Event errors
	ErrEventNotFound = errors.New("event not found")

	// User errors
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user with this email already exists")
	ErrParticipantNotFound = errors.New("one or more participants not found")

	// Expense errors
	ErrExpenseNotFound = errors.New("expense not found")

	// Payment errors
	ErrSameUser              = errors.New("cannot pay yourself")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrPaymentAlreadySettled = errors.New("payment is already settled")
)
