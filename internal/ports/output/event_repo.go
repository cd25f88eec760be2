package output

import (
	"context"

	"github.com/vtstv/EventBot/internal/domain/entities"
)

type EventRepository interface {
	// Create persists a new event and fills in ID and CreatedAt.
	Create(ctx context.Context, event *entities.Event) error
	// FindByID returns domain.ErrEventNotFound when the event is absent.
	FindByID(ctx context.Context, id int64) (*entities.Event, error)
	Update(ctx context.Context, event *entities.Event) error
	// SetMessageID remembers the posted message currently showing the event.
	SetMessageID(ctx context.Context, id int64, messageID string) error
	// Delete removes the event; participant rows cascade.
	Delete(ctx context.Context, id int64) error
}
