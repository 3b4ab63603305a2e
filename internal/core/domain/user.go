package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidInput = errors.New("missing required fields")
var ErrInvalidEmail = errors.New("invalid email format")
var ErrUserExists = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("incorrect credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrNotAuthenticated = errors.New("not authenticated")

// User models a registered account. PasswordHash never leaves the service
// layer: it is excluded from JSON and from cache projections.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Projection is the denormalized snapshot of a User stored in the cache.
// It carries no authentication material and is advisory only.
type Projection struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Project returns the cacheable snapshot of the user.
func (u *User) Project() *Projection {
	return &Projection{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

// NormalizeEmail lowercases and trims an email address. Uniqueness checks and
// login matching both operate on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmailShape applies the intentionally loose local@domain.tld check:
// exactly one '@' with a non-empty local part, and at least one '.' strictly
// inside the domain part. It is not an RFC validator and must not become one.
func ValidEmailShape(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}
	dom := email[at+1:]
	dot := strings.Index(dom, ".")
	return dot > 0 && dot < len(dom)-1
}
