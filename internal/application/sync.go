package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vtstv/EventBot/internal/domain/entities"
	"github.com/vtstv/EventBot/internal/infrastructure/metrics"
	"github.com/vtstv/EventBot/internal/ports/output"
)

// historyScanLimit bounds the fallback search over recent channel history.
const historyScanLimit = 50

// ViewSync keeps the single posted representation of an event in line with
// the canonical rendering. Resolution is a three-step machine: cached
// message reference → bounded history search on the event-id marker →
// publish new and remember.
type ViewSync struct {
	eventRepo output.EventRepository
	guildRepo output.GuildSettingsRepository
	renderer  *Renderer
	catalog   TemplateCatalog
	messenger output.Messenger
	metrics   *metrics.Metrics
	log       *log.Logger
}

func NewViewSync(
	eventRepo output.EventRepository,
	guildRepo output.GuildSettingsRepository,
	renderer *Renderer,
	catalog TemplateCatalog,
	messenger output.Messenger,
	m *metrics.Metrics,
	logger *log.Logger,
) *ViewSync {
	return &ViewSync{
		eventRepo: eventRepo,
		guildRepo: guildRepo,
		renderer:  renderer,
		catalog:   catalog,
		messenger: messenger,
		metrics:   m,
		log:       logger,
	}
}

// Sync reconciles the posted message with the event's current state.
// A missing or unconfigured listening channel skips synchronization without
// error: stored state is the source of truth, presentation is best-effort.
func (v *ViewSync) Sync(ctx context.Context, event *entities.Event) error {
	settings, err := v.guildRepo.Get(ctx, event.GuildID)
	if err != nil {
		return fmt.Errorf("get guild settings: %w", err)
	}
	if settings == nil || settings.ListeningChannel == "" {
		v.log.Warn("listening channel not configured, skipping view sync", "guild_id", event.GuildID)
		return nil
	}
	channelID := settings.ListeningChannel

	content, err := v.renderer.Render(ctx, event.ID)
	if err != nil {
		return err
	}
	controls := Controls(event, resolveScheme(v.catalog, event))
	v.metrics.ViewSyncs.Inc()

	// Step 1: trust the remembered reference if it still resolves.
	if event.MessageID != "" {
		err := v.messenger.Edit(ctx, channelID, event.MessageID, content, controls)
		if err == nil {
			return nil
		}
		if !errors.Is(err, output.ErrMessageGone) {
			return fmt.Errorf("edit message: %w", err)
		}
		v.log.Warn("posted message reference is stale", "event_id", event.ID, "message_id", event.MessageID)
	}

	// Step 2: bounded search over recent history for the event-id marker.
	marker := MessageMarker(event.ID)
	messageID, err := v.messenger.SearchHistory(ctx, channelID, historyScanLimit, func(c string) bool {
		return strings.Contains(c, marker)
	})
	if err != nil {
		return fmt.Errorf("search history: %w", err)
	}
	if messageID != "" {
		err := v.messenger.Edit(ctx, channelID, messageID, content, controls)
		if err == nil {
			return v.remember(ctx, event, messageID)
		}
		if !errors.Is(err, output.ErrMessageGone) {
			return fmt.Errorf("edit recovered message: %w", err)
		}
	}

	// Step 3: publish a fresh representation.
	firstPost := event.MessageID == ""
	messageID, err = v.messenger.Publish(ctx, channelID, content, controls)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	if firstPost {
		if err := v.messenger.CreateThread(ctx, channelID, messageID, event.Name); err != nil {
			v.log.Warn("could not create event thread", "event_id", event.ID, "error", err)
		}
	}
	return v.remember(ctx, event, messageID)
}

func (v *ViewSync) remember(ctx context.Context, event *entities.Event, messageID string) error {
	if err := v.eventRepo.SetMessageID(ctx, event.ID, messageID); err != nil {
		return fmt.Errorf("store message id: %w", err)
	}
	event.MessageID = messageID
	return nil
}
