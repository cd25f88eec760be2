package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/vtstv/EventBot/internal/domain/entities"
	"github.com/vtstv/EventBot/internal/ports/output"
)

// TemplateCatalog resolves role templates by name. Implemented by
// internal/templates; read-only after load.
type TemplateCatalog interface {
	Get(name string) (*entities.RoleTemplate, bool)
}

const startDateLayout = "2006-01-02 15:04"

// MessageMarker is the footer fragment embedded in every rendering; the
// view-sync history search matches on it to re-locate a lost posted message.
func MessageMarker(eventID int64) string {
	return fmt.Sprintf("📝 Event ID: %d |", eventID)
}

// resolveScheme maps an event to its role scheme. A template name that is no
// longer in the catalog degrades the event to untyped signup.
func resolveScheme(catalog TemplateCatalog, event *entities.Event) entities.RoleScheme {
	if event.TemplateName == "" {
		return entities.UntypedScheme()
	}
	tmpl, ok := catalog.Get(event.TemplateName)
	if !ok {
		return entities.UntypedScheme()
	}
	return entities.TemplatedScheme(tmpl)
}

// Renderer produces the canonical textual representation of an event,
// a pure function of the stored event, its participants and the template.
type Renderer struct {
	eventRepo       output.EventRepository
	participantRepo output.ParticipantRepository
	catalog         TemplateCatalog
}

func NewRenderer(
	eventRepo output.EventRepository,
	participantRepo output.ParticipantRepository,
	catalog TemplateCatalog,
) *Renderer {
	return &Renderer{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		catalog:         catalog,
	}
}

func (r *Renderer) Render(ctx context.Context, eventID int64) (string, error) {
	event, err := r.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return "", err
	}
	participants, err := r.participantRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return "", fmt.Errorf("get participants: %w", err)
	}
	return renderEvent(event, participants, resolveScheme(r.catalog, event)), nil
}

func renderEvent(event *entities.Event, participants []entities.Participant, scheme entities.RoleScheme) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 **%s**\n", event.Name)
	if event.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", event.Description)
	}
	fmt.Fprintf(&b, "\n🕒 Start: %s\n", event.StartDate.Format(startDateLayout))

	if scheme.Templated() {
		b.WriteString("\n**Roles:**\n")
		for _, role := range scheme.Roles() {
			var mentions []string
			for _, p := range participants {
				if p.RoleName == role.Name {
					mentions = append(mentions, fmt.Sprintf("<@%s>", p.UserID))
				}
			}
			fmt.Fprintf(&b, "\n%s %s (%d/%d)\n", role.Emoji, role.Name, len(mentions), role.Limit)
			if len(mentions) > 0 {
				b.WriteString("→ " + strings.Join(mentions, ", ") + "\n")
			} else {
				b.WriteString("→ No participants\n")
			}
		}
	} else {
		fmt.Fprintf(&b, "\n**Participants (%d):**\n", len(participants))
		if len(participants) > 0 {
			mentions := make([]string, len(participants))
			for i, p := range participants {
				mentions[i] = fmt.Sprintf("<@%s>", p.UserID)
			}
			b.WriteString("→ " + strings.Join(mentions, ", ") + "\n")
		} else {
			b.WriteString("→ No participants yet\n")
		}
	}

	fmt.Fprintf(&b, "\n%s Status: %s", MessageMarker(event.ID), event.Status)
	return b.String()
}
