package models

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/manav1337/Task-manager/internal/apperrors"
)

type Role int

// UserRole constants
const (
	RoleUser  Role = 1
	RoleAdmin Role = 2
)

// User represents a user in the system
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	Role         Role      `json:"role"` // 1=User, 2=Admin, default=1
	CreatedAt    time.Time `json:"created_at"`
}

// UserSummary is the outward-facing view of a user. It carries the same safe
// fields everywhere a user is echoed back (auth responses, admin listings,
// task owner embedding).
type UserSummary struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary converts a full user record into its public view.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validate checks the registration input and returns field-level errors.
// Username and email are normalized in place (trimmed, email lowercased)
// before the checks run.
func (r *RegisterRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))

	var errs apperrors.ValidationErrors
	if r.Username == "" {
		errs = append(errs, apperrors.FieldError{Field: "username", Message: "username is required"})
	} else if utf8.RuneCountInString(r.Username) > 50 {
		errs = append(errs, apperrors.FieldError{Field: "username", Message: "username cannot exceed 50 characters"})
	}
	if r.Email == "" {
		errs = append(errs, apperrors.FieldError{Field: "email", Message: "email is required"})
	} else if utf8.RuneCountInString(r.Email) > 100 || !emailRegex.MatchString(r.Email) {
		errs = append(errs, apperrors.FieldError{Field: "email", Message: "invalid email format"})
	}
	if len(r.Password) < 6 {
		errs = append(errs, apperrors.FieldError{Field: "password", Message: "password must be at least 6 characters"})
	} else if len(r.Password) > 72 {
		// bcrypt input limit
		errs = append(errs, apperrors.FieldError{Field: "password", Message: "password cannot exceed 72 characters"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Validate checks the login input. Both fields are required; everything else
// is decided against the stored credentials.
func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)

	var errs apperrors.ValidationErrors
	if r.Username == "" {
		errs = append(errs, apperrors.FieldError{Field: "username", Message: "username is required"})
	}
	if r.Password == "" {
		errs = append(errs, apperrors.FieldError{Field: "password", Message: "password is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
