package domain

import "strings"

// Account is a credential record. It is keyed by its normalized username.
type Account struct {
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	PasswordHash string `json:"password_hash"`
}

// NormalizeUsername returns the canonical form used as the account key.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Normalize trims user supplied fields.
func (a Account) Normalize() Account {
	a.Username = NormalizeUsername(a.Username)
	a.DisplayName = strings.TrimSpace(a.DisplayName)
	return a
}

// Validate checks the stored shape of an account.
func (a Account) Validate() error {
	errs := FieldErrors{}
	if n := len(a.Username); n < 3 || n > 64 {
		errs["username"] = "must be between 3 and 64 characters"
	} else if strings.ContainsAny(a.Username, " \t\r\n:") {
		errs["username"] = "must not contain whitespace or ':'"
	}
	if a.PasswordHash == "" {
		errs["password_hash"] = "required"
	}
	return errs.errOrNil()
}
