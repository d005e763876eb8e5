package domain

import (
	"net/mail"
	"strings"
	"time"
)

// Employee is the body stored in the employees collection.
type Employee struct {
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Title      string     `json:"title,omitempty"`
	Department string     `json:"department,omitempty"`
	HiredAt    *time.Time `json:"hired_at,omitempty"`
}

func (e Employee) Normalize() Employee {
	e.FirstName = strings.TrimSpace(e.FirstName)
	e.LastName = strings.TrimSpace(e.LastName)
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	e.Title = strings.TrimSpace(e.Title)
	e.Department = strings.TrimSpace(e.Department)
	return e
}

func (e Employee) Validate() error {
	errs := FieldErrors{}
	if e.FirstName == "" {
		errs["first_name"] = "required"
	}
	if e.LastName == "" {
		errs["last_name"] = "required"
	}
	if e.Email == "" {
		errs["email"] = "required"
	} else if _, err := mail.ParseAddress(e.Email); err != nil {
		errs["email"] = "invalid address"
	}
	return errs.errOrNil()
}
