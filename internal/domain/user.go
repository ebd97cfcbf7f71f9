package domain

import "time"

// User is a member who can pay for expenses and owe shares.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// Validate checks the user's name and email.
func (u *User) Validate() error {
	if err := ValidateName(u.Name); err != nil {
		return err
	}

	if u.Email == "" {
		return nil
	}

	return ValidateEmail(u.Email)
}
