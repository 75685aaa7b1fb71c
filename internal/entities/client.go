package entities

import "strings"

// Client is a gym member record. Dates are stored as YYYY-MM-DD text.
type Client struct {
	ID               int64  `db:"id" json:"id"`
	FirstName        string `db:"first_name" json:"first_name"`
	LastName         string `db:"last_name" json:"last_name"`
	Email            string `db:"email" json:"email"`
	Phone            string `db:"phone" json:"phone"`
	BirthDate        string `db:"birth_date" json:"birth_date"`
	RegistrationDate string `db:"registration_date" json:"registration_date"`
	Notes            string `db:"notes" json:"notes"`
}

func (c Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
