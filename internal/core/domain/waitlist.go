package domain

import (
	"errors"
	"net/mail"
	"strings"
)

const (
	WaitlistStatusActive    = "active"
	WaitlistStatusContacted = "contacted"
	WaitlistStatusConverted = "converted"

	DefaultWaitlistLimit = 50
	MaxWaitlistLimit     = 100
)

var (
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidStatus      = errors.New("invalid status (must be active, contacted or converted)")
	ErrMissingField       = errors.New("missing required waitlist field")
	ErrWaitlistIDRequired = errors.New("waitlist entry id is required")
)

type WaitlistApplication struct {
	PersonType       string  `json:"person_type" binding:"required"`
	ActivityLevel    string  `json:"activity_level" binding:"required"`
	CurrentSituation string  `json:"current_situation" binding:"required"`
	DesiredResults   string  `json:"desired_results" binding:"required"`
	BiggestChallenge string  `json:"biggest_challenge" binding:"required"`
	PreviousAttempts string  `json:"previous_attempts" binding:"required"`
	Budget           string  `json:"budget" binding:"required"`
	Email            string  `json:"email" binding:"required"`
	Phone            *string `json:"phone,omitempty"`
}

// Normalize trims every field, lowercases the email and validates.
func (a *WaitlistApplication) Normalize() error {
	fields := []*string{
		&a.PersonType, &a.ActivityLevel, &a.CurrentSituation, &a.DesiredResults,
		&a.BiggestChallenge, &a.PreviousAttempts, &a.Budget, &a.Email,
	}
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
		if *f == "" {
			return ErrMissingField
		}
	}

	a.Email = strings.ToLower(a.Email)
	if !isValidEmail(a.Email) {
		return ErrInvalidEmail
	}

	if a.Phone != nil {
		p := strings.TrimSpace(*a.Phone)
		if p == "" {
			a.Phone = nil
		} else {
			a.Phone = &p
		}
	}
	return nil
}

type WaitlistJoinResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	WaitlistID string `json:"waitlist_id"`
	Position   int    `json:"position"`
}

type WaitlistEntry struct {
	ID               string   `json:"id"`
	PersonType       string   `json:"person_type"`
	ActivityLevel    string   `json:"activity_level"`
	CurrentSituation string   `json:"current_situation"`
	DesiredResults   string   `json:"desired_results"`
	BiggestChallenge string   `json:"biggest_challenge"`
	PreviousAttempts string   `json:"previous_attempts"`
	Budget           string   `json:"budget"`
	Email            string   `json:"email"`
	Phone            *string  `json:"phone,omitempty"`
	JoinedAt         string   `json:"joined_at"`
	Status           string   `json:"status"`
	PriorityScore    int      `json:"priority_score"`
	Tags             []string `json:"tags"`
}

type WaitlistStats struct {
	TotalEntries int `json:"total_entries"`
	ByType       struct {
		Executives    int `json:"executives"`
		Professionals int `json:"professionals"`
		Students      int `json:"students"`
	} `json:"by_type"`
	HighValueProspects int `json:"high_value_prospects"`
}

type WaitlistPage struct {
	Entries []WaitlistEntry `json:"entries"`
	Count   int             `json:"count"`
}

type WaitlistQuery struct {
	Limit  int
	Status string
}

// Normalize clamps the limit to 1..100 (0 means the default of 50) and checks
// the optional status filter.
func (q *WaitlistQuery) Normalize() error {
	switch {
	case q.Limit <= 0:
		q.Limit = DefaultWaitlistLimit
	case q.Limit > MaxWaitlistLimit:
		q.Limit = MaxWaitlistLimit
	}
	q.Status = strings.TrimSpace(q.Status)
	if q.Status != "" && !ValidWaitlistStatus(q.Status) {
		return ErrInvalidStatus
	}
	return nil
}

func ValidWaitlistStatus(s string) bool {
	switch s {
	case WaitlistStatusActive, WaitlistStatusContacted, WaitlistStatusConverted:
		return true
	}
	return false
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
