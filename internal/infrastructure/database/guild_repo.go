package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vtstv/EventBot/internal/domain/entities"
	"github.com/vtstv/EventBot/internal/ports/output"
)

var _ output.GuildSettingsRepository = (*GuildSettingsRepository)(nil)

// GuildSettingsRepository implements output.GuildSettingsRepository on pgx.
type GuildSettingsRepository struct {
	pool *pgxpool.Pool
}

func NewGuildSettingsRepository(pool *pgxpool.Pool) *GuildSettingsRepository {
	return &GuildSettingsRepository{pool: pool}
}

func (r *GuildSettingsRepository) Get(ctx context.Context, guildID string) (*entities.GuildSetting, error) {
	var channel pgtype.Text
	err := r.pool.QueryRow(ctx, `SELECT listening_channel FROM guild_settings WHERE guild_id = $1`,
		guildID).Scan(&channel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get guild settings: %w", err)
	}
	return &entities.GuildSetting{
		GuildID:          guildID,
		ListeningChannel: pgtypeTextToString(channel),
	}, nil
}

func (r *GuildSettingsRepository) Upsert(ctx context.Context, setting *entities.GuildSetting) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO guild_settings (guild_id, listening_channel)
		VALUES ($1, $2)
		ON CONFLICT (guild_id) DO UPDATE SET listening_channel = EXCLUDED.listening_channel`,
		setting.GuildID, stringToPgtypeText(setting.ListeningChannel))
	if err != nil {
		return fmt.Errorf("upsert guild settings: %w", err)
	}
	return nil
}
