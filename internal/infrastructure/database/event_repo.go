package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vtstv/EventBot/internal/domain"
	"github.com/vtstv/EventBot/internal/domain/entities"
	"github.com/vtstv/EventBot/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

// EventRepository implements output.EventRepository on pgx.
type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, guild_id, creator_id, name, description, start_date, status, template_name, message_id, created_at`

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	var createdAt pgtype.Timestamptz
	err := r.pool.QueryRow(ctx, `
		INSERT INTO events (guild_id, creator_id, name, description, start_date, status, template_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		event.GuildID, event.CreatorID, event.Name, event.Description,
		event.StartDate, event.Status, stringToPgtypeText(event.TemplateName),
	).Scan(&event.ID, &createdAt)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	event.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id int64) (*entities.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return event, nil
}

func (r *EventRepository) Update(ctx context.Context, event *entities.Event) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE events
		SET name = $2, description = $3, start_date = $4, status = $5
		WHERE id = $1`,
		event.ID, event.Name, event.Description, event.StartDate, event.Status,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) SetMessageID(ctx context.Context, id int64, messageID string) error {
	if _, err := r.pool.Exec(ctx, `UPDATE events SET message_id = $2 WHERE id = $1`,
		id, stringToPgtypeText(messageID)); err != nil {
		return fmt.Errorf("set message id: %w", err)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (*entities.Event, error) {
	var (
		e            entities.Event
		templateName pgtype.Text
		messageID    pgtype.Text
		createdAt    pgtype.Timestamptz
	)
	err := row.Scan(&e.ID, &e.GuildID, &e.CreatorID, &e.Name, &e.Description,
		&e.StartDate, &e.Status, &templateName, &messageID, &createdAt)
	if err != nil {
		return nil, err
	}
	e.TemplateName = pgtypeTextToString(templateName)
	e.MessageID = pgtypeTextToString(messageID)
	e.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	return &e, nil
}
