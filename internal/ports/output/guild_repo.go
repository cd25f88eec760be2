package output

import (
	"context"

	"github.com/vtstv/EventBot/internal/domain/entities"
)

type GuildSettingsRepository interface {
	// Get returns (nil, nil) when the guild has no settings row yet.
	Get(ctx context.Context, guildID string) (*entities.GuildSetting, error)
	Upsert(ctx context.Context, setting *entities.GuildSetting) error
}
