package input

import (
	"context"
	"time"

	"github.com/vtstv/EventBot/internal/domain/entities"
)

type EventUseCase interface {
	CreateEvent(ctx context.Context, guildID, creatorID, name, description string, startDate time.Time, templateName string) (*entities.Event, error)
	GetEvent(ctx context.Context, eventID int64) (*entities.Event, error)
	EditEvent(ctx context.Context, eventID int64, field, value, actorID string) error
	CloseEvent(ctx context.Context, eventID int64, actorID string, notify bool) error
	OpenEvent(ctx context.Context, eventID int64, actorID string) error
	DeleteEvent(ctx context.Context, eventID int64, actorID string) error
}
