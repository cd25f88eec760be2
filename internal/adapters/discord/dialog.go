package discord

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	pkgdiscord "github.com/vtstv/EventBot/pkg/discord"
)

// promptTimeout bounds the wait for each answer in a DM dialog. On timeout
// the whole flow aborts and no partial event is ever created.
const promptTimeout = 60 * time.Second

var (
	errDialogActive  = errors.New("dialog already active for user")
	errDialogTimeout = errors.New("dialog prompt timed out")
)

// dialogSession is the short-lived state of one guided DM flow, keyed by
// user id. Inbound DM messages are routed into inputs by the message
// handler; the flow goroutine consumes them one prompt at a time.
type dialogSession struct {
	flowID  uuid.UUID
	userID  string
	inputs  chan string
	timeout time.Duration
}

func (d *dialogSession) await(ctx context.Context) (string, error) {
	select {
	case answer := <-d.inputs:
		return answer, nil
	case <-time.After(d.timeout):
		return "", errDialogTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type dialogManager struct {
	mu       sync.Mutex
	sessions map[string]*dialogSession
}

func newDialogManager() *dialogManager {
	return &dialogManager{sessions: make(map[string]*dialogSession)}
}

func (m *dialogManager) begin(userID string) (*dialogSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[userID]; exists {
		return nil, errDialogActive
	}
	session := &dialogSession{
		flowID:  uuid.New(),
		userID:  userID,
		inputs:  make(chan string, 1),
		timeout: promptTimeout,
	}
	m.sessions[userID] = session
	return session, nil
}

func (m *dialogManager) end(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// deliver routes a DM message into the user's running dialog, if any.
func (m *dialogManager) deliver(userID, content string) bool {
	m.mu.Lock()
	session, ok := m.sessions[userID]
	m.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case session.inputs <- content:
	default:
		// Flow is between prompts; drop the extra message.
	}
	return true
}

// HandleCreateEvent starts the guided DM creation flow. The engine only
// ever sees the final validated field values.
func (h *Handler) HandleCreateEvent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	locale := interactionLocale(i)

	session, err := h.dialogs.begin(user.ID)
	if err != nil {
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "dialog_active", nil))
		return
	}
	dm, err := s.UserChannelCreate(user.ID)
	if err != nil {
		h.dialogs.end(user.ID)
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "dm_blocked", nil))
		return
	}
	respondEphemeral(s, i.Interaction, h.translator.T(locale, "dialog_check_dms", nil))
	h.log.Debug("create dialog started", "flow_id", session.flowID, "user_id", user.ID)

	go h.runCreateDialog(s, session, dm.ID, i.GuildID, user.ID, locale)
}

func (h *Handler) runCreateDialog(s *discordgo.Session, session *dialogSession, dmChannelID, guildID, userID, locale string) {
	defer h.dialogs.end(userID)
	ctx := context.Background()

	say := func(key string, data map[string]any) {
		if _, err := s.ChannelMessageSend(dmChannelID, h.translator.T(locale, key, data)); err != nil {
			h.log.Warn("dialog dm failed", "flow_id", session.flowID, "error", err)
		}
	}
	ask := func(key string, data map[string]any) (string, bool) {
		say(key, data)
		answer, err := session.await(ctx)
		if err != nil {
			say("dialog_timeout", nil)
			return "", false
		}
		return strings.TrimSpace(answer), true
	}

	name, ok := ask("dialog_create_start", nil)
	if !ok {
		return
	}
	description, ok := ask("dialog_description_prompt", nil)
	if !ok {
		return
	}
	dateInput, ok := ask("dialog_start_date_prompt", nil)
	if !ok {
		return
	}
	startDate, err := pkgdiscord.ParseStartDate(dateInput)
	if err != nil {
		say("err_invalid_date", nil)
		return
	}

	templateName := ""
	choice, ok := ask("dialog_template_prompt", nil)
	if !ok {
		return
	}
	if strings.EqualFold(choice, "yes") {
		templateName, ok = ask("dialog_template_name_prompt",
			map[string]any{"Templates": strings.Join(h.catalog.Names(), ", ")})
		if !ok {
			return
		}
		if _, found := h.catalog.Get(templateName); !found {
			say("err_unknown_template", nil)
			return
		}
	}

	event, err := h.eventUseCase.CreateEvent(ctx, guildID, userID, name, description, startDate, templateName)
	if err != nil {
		h.log.Error("create event failed", "flow_id", session.flowID, "error", err)
		say(pkgdiscord.MessageKey(err), nil)
		return
	}
	say("event_created", map[string]any{"EventID": event.ID})
}
