package input

import "context"

type RosterUseCase interface {
	// Signup registers the user for a role and returns the updated
	// canonical rendering of the event.
	Signup(ctx context.Context, eventID int64, userID, roleName string) (string, error)
	// Cancel removes the user's signup and returns the updated rendering.
	Cancel(ctx context.Context, eventID int64, userID string) (string, error)
	// Render is a pure read of the event's current state.
	Render(ctx context.Context, eventID int64) (string, error)
}
