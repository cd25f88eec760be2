package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vtstv/EventBot/internal/domain"
	"github.com/vtstv/EventBot/internal/domain/entities"
	"github.com/vtstv/EventBot/internal/ports/output"
)

var _ output.ParticipantRepository = (*ParticipantRepository)(nil)

// uniqueViolation is the Postgres error code raised by the
// (event_id, user_id) unique index on duplicate signups.
const uniqueViolation = "23505"

// ParticipantRepository implements output.ParticipantRepository on pgx.
type ParticipantRepository struct {
	pool *pgxpool.Pool
}

func NewParticipantRepository(pool *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{pool: pool}
}

// Create inserts a signup inside one transaction that locks the parent
// event row, so concurrent signups on the same event serialize and the
// capacity check cannot be raced past.
func (r *ParticipantRepository) Create(ctx context.Context, participant *entities.Participant, capacity int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin signup tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM events WHERE id = $1 FOR UPDATE`,
		participant.EventID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("lock event: %w", err)
	}
	if status != domain.StatusOpen {
		return domain.ErrEventNotOpen
	}

	if capacity > 0 {
		var occupancy int64
		err = tx.QueryRow(ctx, `SELECT count(*) FROM participants WHERE event_id = $1 AND role_name = $2`,
			participant.EventID, participant.RoleName).Scan(&occupancy)
		if err != nil {
			return fmt.Errorf("count role occupancy: %w", err)
		}
		if occupancy >= int64(capacity) {
			return domain.ErrRoleFull
		}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO participants (event_id, user_id, role_name, signup_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		participant.EventID, participant.UserID, participant.RoleName, participant.SignupDate,
	).Scan(&participant.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrAlreadySignedUp
		}
		return fmt.Errorf("create participant: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit signup tx: %w", err)
	}
	return nil
}

func (r *ParticipantRepository) Delete(ctx context.Context, eventID int64, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM participants WHERE event_id = $1 AND user_id = $2`,
		eventID, userID)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotSignedUp
	}
	return nil
}

func (r *ParticipantRepository) FindByEventID(ctx context.Context, eventID int64) ([]entities.Participant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_id, user_id, role_name, signup_date
		FROM participants
		WHERE event_id = $1
		ORDER BY signup_date ASC, id ASC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("get participants: %w", err)
	}
	defer rows.Close()

	var out []entities.Participant
	for rows.Next() {
		var p entities.Participant
		if err := rows.Scan(&p.ID, &p.EventID, &p.UserID, &p.RoleName, &p.SignupDate); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	return out, nil
}

func (r *ParticipantRepository) FindByEventIDAndUserID(ctx context.Context, eventID int64, userID string) (*entities.Participant, error) {
	var p entities.Participant
	err := r.pool.QueryRow(ctx, `
		SELECT id, event_id, user_id, role_name, signup_date
		FROM participants
		WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	).Scan(&p.ID, &p.EventID, &p.UserID, &p.RoleName, &p.SignupDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	return &p, nil
}
