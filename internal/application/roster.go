package application

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vtstv/EventBot/internal/domain"
	"github.com/vtstv/EventBot/internal/domain/entities"
	"github.com/vtstv/EventBot/internal/infrastructure/metrics"
	"github.com/vtstv/EventBot/internal/ports/input"
	"github.com/vtstv/EventBot/internal/ports/output"
)

var _ input.RosterUseCase = (*RosterService)(nil)

// RosterService validates and applies signups and cancellations against the
// event's status and role capacities. Capacity and duplicate enforcement is
// delegated to the participant repository's atomic Create so that two
// concurrent signups cannot both pass a stale check.
type RosterService struct {
	eventRepo       output.EventRepository
	participantRepo output.ParticipantRepository
	catalog         TemplateCatalog
	renderer        *Renderer
	syncer          *ViewSync
	metrics         *metrics.Metrics
	log             *log.Logger
}

func NewRosterService(
	eventRepo output.EventRepository,
	participantRepo output.ParticipantRepository,
	catalog TemplateCatalog,
	renderer *Renderer,
	syncer *ViewSync,
	m *metrics.Metrics,
	logger *log.Logger,
) *RosterService {
	return &RosterService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		catalog:         catalog,
		renderer:        renderer,
		syncer:          syncer,
		metrics:         m,
		log:             logger,
	}
}

func (s *RosterService) Signup(ctx context.Context, eventID int64, userID, roleName string) (string, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return "", err
	}
	if !event.IsOpen() {
		return "", domain.ErrEventNotOpen
	}

	scheme := resolveScheme(s.catalog, event)
	capacity := 0
	if scheme.Templated() {
		role, ok := scheme.Role(roleName)
		if !ok {
			return "", domain.ErrInvalidRole
		}
		capacity = role.Limit
	} else {
		roleName = domain.GenericRole
	}

	// Friendly fast path; the repository's unique constraint is authoritative.
	existing, err := s.participantRepo.FindByEventIDAndUserID(ctx, eventID, userID)
	if err != nil {
		return "", fmt.Errorf("find participant: %w", err)
	}
	if existing != nil {
		return "", domain.ErrAlreadySignedUp
	}

	participant := &entities.Participant{
		EventID:    eventID,
		UserID:     userID,
		RoleName:   roleName,
		SignupDate: time.Now(),
	}
	if err := s.participantRepo.Create(ctx, participant, capacity); err != nil {
		return "", err
	}
	s.metrics.Signups.Inc()
	s.sync(ctx, event)
	return s.renderer.Render(ctx, eventID)
}

func (s *RosterService) Cancel(ctx context.Context, eventID int64, userID string) (string, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return "", err
	}
	existing, err := s.participantRepo.FindByEventIDAndUserID(ctx, eventID, userID)
	if err != nil {
		return "", fmt.Errorf("find participant: %w", err)
	}
	if existing == nil {
		return "", domain.ErrNotSignedUp
	}
	if err := s.participantRepo.Delete(ctx, eventID, userID); err != nil {
		return "", err
	}
	s.metrics.Cancels.Inc()
	s.sync(ctx, event)
	return s.renderer.Render(ctx, eventID)
}

func (s *RosterService) Render(ctx context.Context, eventID int64) (string, error) {
	return s.renderer.Render(ctx, eventID)
}

func (s *RosterService) sync(ctx context.Context, event *entities.Event) {
	if err := s.syncer.Sync(ctx, event); err != nil {
		s.log.Error("view sync failed", "event_id", event.ID, "error", err)
	}
}
