package output

import (
	"context"

	"github.com/vtstv/EventBot/internal/domain/entities"
)

type ParticipantRepository interface {
	// Create inserts a signup atomically with respect to concurrent signups
	// on the same event: implementations re-check the parent event's status
	// and the role's occupancy inside one unit of work. capacity <= 0 means
	// the role is uncapped.
	//
	// Returns domain.ErrEventNotFound, domain.ErrEventNotOpen,
	// domain.ErrRoleFull or domain.ErrAlreadySignedUp.
	Create(ctx context.Context, participant *entities.Participant, capacity int) error
	// Delete returns domain.ErrNotSignedUp when no row matches.
	Delete(ctx context.Context, eventID int64, userID string) error
	// FindByEventID returns participants in signup order.
	FindByEventID(ctx context.Context, eventID int64) ([]entities.Participant, error)
	// FindByEventIDAndUserID returns (nil, nil) when the user holds no role.
	FindByEventIDAndUserID(ctx context.Context, eventID int64, userID string) (*entities.Participant, error)
}
