package entities

import "time"

// Participant links one user to one role within one event.
// At most one row exists per (event, user).
type Participant struct {
	ID         int64
	EventID    int64
	UserID     string
	RoleName   string
	SignupDate time.Time
}
