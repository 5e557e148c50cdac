package models

import (
	"errors"
	"time"
)

// SpendFocusOptions are the categories offered by the landing page form.
// The API accepts any non-empty value.
var SpendFocusOptions = []string{"travel", "dining", "gas", "rent", "everyday", "other"}

// ErrDuplicateSignup is returned by a signup store when the email is already registered
var ErrDuplicateSignup = errors.New("signup already exists")

// Represents a validated waitlist join request
type SignupSubmission struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	SpendFocus string `json:"spendFocus"`
	Notes      string `json:"notes,omitempty"`
	OptIn      bool   `json:"optIn"`
}

// SignupRecord is the persisted form of a submission
type SignupRecord struct {
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	SpendFocus string    `json:"spend_focus"`
	Notes      string    `json:"notes"`
	OptIn      bool      `json:"opt_in"`
	JoinedAt   time.Time `json:"joined_at"`
}

// NewSignupRecord builds the record stored for a submission
func NewSignupRecord(s SignupSubmission, joinedAt time.Time) SignupRecord {
	return SignupRecord{
		FullName:   s.FullName,
		Email:      s.Email,
		SpendFocus: s.SpendFocus,
		Notes:      s.Notes,
		OptIn:      s.OptIn,
		JoinedAt:   joinedAt.UTC(),
	}
}
