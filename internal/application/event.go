package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vtstv/EventBot/internal/domain"
	"github.com/vtstv/EventBot/internal/domain/entities"
	"github.com/vtstv/EventBot/internal/infrastructure/metrics"
	"github.com/vtstv/EventBot/internal/ports/input"
	"github.com/vtstv/EventBot/internal/ports/output"
)

var _ input.EventUseCase = (*EventService)(nil)

// EventService owns the event lifecycle: creation, edits and the
// open/closed/deleted state machine.
type EventService struct {
	eventRepo       output.EventRepository
	participantRepo output.ParticipantRepository
	catalog         TemplateCatalog
	messenger       output.Messenger
	syncer          *ViewSync
	translator      output.T
	metrics         *metrics.Metrics
	ownerID         string
	log             *log.Logger
}

func NewEventService(
	eventRepo output.EventRepository,
	participantRepo output.ParticipantRepository,
	catalog TemplateCatalog,
	messenger output.Messenger,
	syncer *ViewSync,
	translator output.T,
	m *metrics.Metrics,
	ownerID string,
	logger *log.Logger,
) *EventService {
	return &EventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		catalog:         catalog,
		messenger:       messenger,
		syncer:          syncer,
		translator:      translator,
		metrics:         m,
		ownerID:         ownerID,
		log:             logger,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, guildID, creatorID, name, description string, startDate time.Time, templateName string) (*entities.Event, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: event name is empty", domain.ErrUnknownField)
	}
	if startDate.IsZero() {
		return nil, domain.ErrInvalidDate
	}
	if templateName != "" {
		if _, ok := s.catalog.Get(templateName); !ok {
			return nil, domain.ErrUnknownTemplate
		}
	}
	event := &entities.Event{
		GuildID:      guildID,
		CreatorID:    creatorID,
		Name:         strings.TrimSpace(name),
		Description:  description,
		StartDate:    startDate,
		Status:       domain.StatusOpen,
		TemplateName: templateName,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.metrics.EventsCreated.Inc()
	s.sync(ctx, event)
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID int64) (*entities.Event, error) {
	return s.eventRepo.FindByID(ctx, eventID)
}

// EditEvent updates one field. Allowed fields: name, description, start_date.
func (s *EventService) EditEvent(ctx context.Context, eventID int64, field, value, actorID string) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if !event.CanManage(actorID, s.ownerID) {
		return domain.ErrNotOrganizer
	}
	switch field {
	case "name":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: event name is empty", domain.ErrUnknownField)
		}
		event.Name = strings.TrimSpace(value)
	case "description":
		event.Description = value
	case "start_date":
		startDate, err := time.ParseInLocation(startDateLayout, strings.TrimSpace(value), time.Local)
		if err != nil {
			return domain.ErrInvalidDate
		}
		event.StartDate = startDate
	default:
		return domain.ErrUnknownField
	}
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	s.sync(ctx, event)
	return nil
}

// CloseEvent closes the event. With notify, every participant gets a
// best-effort direct message; individual delivery failures never abort the
// close.
func (s *EventService) CloseEvent(ctx context.Context, eventID int64, actorID string, notify bool) error {
	event, err := s.setStatus(ctx, eventID, actorID, domain.StatusClosed)
	if err != nil {
		return err
	}
	s.metrics.EventsClosed.Inc()
	if notify {
		s.notifyParticipants(ctx, event)
	}
	s.sync(ctx, event)
	return nil
}

func (s *EventService) OpenEvent(ctx context.Context, eventID int64, actorID string) error {
	event, err := s.setStatus(ctx, eventID, actorID, domain.StatusOpen)
	if err != nil {
		return err
	}
	s.sync(ctx, event)
	return nil
}

// DeleteEvent removes the event; participant rows cascade at the store.
func (s *EventService) DeleteEvent(ctx context.Context, eventID int64, actorID string) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if !event.CanManage(actorID, s.ownerID) {
		return domain.ErrNotOrganizer
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	s.metrics.EventsDeleted.Inc()
	return nil
}

func (s *EventService) setStatus(ctx context.Context, eventID int64, actorID, status string) (*entities.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.CanManage(actorID, s.ownerID) {
		return nil, domain.ErrNotOrganizer
	}
	event.Status = status
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *EventService) notifyParticipants(ctx context.Context, event *entities.Event) {
	participants, err := s.participantRepo.FindByEventID(ctx, event.ID)
	if err != nil {
		s.log.Error("could not load participants for close notification", "event_id", event.ID, "error", err)
		return
	}
	text := s.translator.T("", "event_closed_dm", map[string]any{"Name": event.Name})
	for _, p := range participants {
		if err := s.messenger.DirectMessage(ctx, p.UserID, text); err != nil {
			// Users with DMs disabled are expected; fire-and-forget.
			s.log.Warn("close notification not delivered", "event_id", event.ID, "user_id", p.UserID, "error", err)
		}
	}
}

// sync is best-effort: the store is the source of truth and presentation
// failures never fail the operation.
func (s *EventService) sync(ctx context.Context, event *entities.Event) {
	if err := s.syncer.Sync(ctx, event); err != nil {
		s.log.Error("view sync failed", "event_id", event.ID, "error", err)
	}
}
