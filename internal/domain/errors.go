package domain

import "errors"

// Event status values. An event only ever moves open→closed, closed→open,
// or any status→deleted (row removed).
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// GenericRole is the sentinel role recorded for signups on events without
// a role template.
const GenericRole = "participant"

// Domain errors.
var (
	ErrEventNotFound   = errors.New("event not found")
	ErrNotOrganizer    = errors.New("only the event creator or the bot owner can do this")
	ErrInvalidDate     = errors.New("invalid date format")
	ErrUnknownField    = errors.New("unknown event field")
	ErrUnknownTemplate = errors.New("unknown template")
	ErrEventNotOpen    = errors.New("event is not open for registration")
	ErrAlreadySignedUp = errors.New("already signed up for this event")
	ErrInvalidRole     = errors.New("invalid role")
	ErrRoleFull        = errors.New("role is full")
	ErrNotSignedUp     = errors.New("not signed up for this event")
)

// Code returns a stable identifier for a domain error, used to look up
// user-facing translations. Returns "" for non-domain errors.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrEventNotFound):
		return "event_not_found"
	case errors.Is(err, ErrNotOrganizer):
		return "no_permission"
	case errors.Is(err, ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, ErrUnknownField):
		return "unknown_field"
	case errors.Is(err, ErrUnknownTemplate):
		return "unknown_template"
	case errors.Is(err, ErrEventNotOpen):
		return "event_not_open"
	case errors.Is(err, ErrAlreadySignedUp):
		return "already_signed_up"
	case errors.Is(err, ErrInvalidRole):
		return "invalid_role"
	case errors.Is(err, ErrRoleFull):
		return "role_full"
	case errors.Is(err, ErrNotSignedUp):
		return "not_signed_up"
	}
	return ""
}
