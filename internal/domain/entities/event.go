package entities

import (
	"time"

	"github.com/vtstv/EventBot/internal/domain"
)

// Event is an organized activity users can sign up to.
type Event struct {
	ID           int64
	GuildID      string
	CreatorID    string
	Name         string
	Description  string
	StartDate    time.Time
	Status       string
	TemplateName string // empty = untyped signup
	// MessageID is the last known posted message showing this event.
	// It is a hint only and may be stale; view sync re-resolves it.
	MessageID string
	CreatedAt time.Time
}

func (e *Event) IsOpen() bool {
	return e.Status == domain.StatusOpen
}

// CanManage reports whether actorID may edit, close, open or delete the event.
func (e *Event) CanManage(actorID, ownerID string) bool {
	if actorID == "" {
		return false
	}
	return actorID == e.CreatorID || (ownerID != "" && actorID == ownerID)
}
