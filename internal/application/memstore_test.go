package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/vtstv/EventBot/internal/domain"
	"github.com/vtstv/EventBot/internal/domain/entities"
	"github.com/vtstv/EventBot/internal/ports/output"
)

// memStore is an in-memory stand-in for the Postgres repositories. Its
// participant Create mirrors the production guarantee: event status, role
// occupancy and duplicates are re-checked inside one critical section.
type memStore struct {
	mu            sync.Mutex
	nextEventID   int64
	nextPartID    int64
	events        map[int64]*entities.Event
	participants  []entities.Participant
	guildChannels map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		events:        make(map[int64]*entities.Event),
		guildChannels: make(map[string]string),
	}
}

type memEvents struct{ s *memStore }

var _ output.EventRepository = memEvents{}

func (r memEvents) Create(_ context.Context, event *entities.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextEventID++
	event.ID = r.s.nextEventID
	stored := *event
	r.s.events[event.ID] = &stored
	return nil
}

func (r memEvents) FindByID(_ context.Context, id int64) (*entities.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	event, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (r memEvents) Update(_ context.Context, event *entities.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.events[event.ID]
	if !ok {
		return domain.ErrEventNotFound
	}
	*stored = *event
	return nil
}

func (r memEvents) SetMessageID(_ context.Context, id int64, messageID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.events[id]
	if !ok {
		return domain.ErrEventNotFound
	}
	stored.MessageID = messageID
	return nil
}

func (r memEvents) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.s.events, id)
	kept := r.s.participants[:0]
	for _, p := range r.s.participants {
		if p.EventID != id {
			kept = append(kept, p)
		}
	}
	r.s.participants = kept
	return nil
}

type memParticipants struct{ s *memStore }

var _ output.ParticipantRepository = memParticipants{}

func (r memParticipants) Create(_ context.Context, participant *entities.Participant, capacity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	event, ok := r.s.events[participant.EventID]
	if !ok {
		return domain.ErrEventNotFound
	}
	if event.Status != domain.StatusOpen {
		return domain.ErrEventNotOpen
	}
	occupancy := 0
	for _, p := range r.s.participants {
		if p.EventID != participant.EventID {
			continue
		}
		if p.UserID == participant.UserID {
			return domain.ErrAlreadySignedUp
		}
		if p.RoleName == participant.RoleName {
			occupancy++
		}
	}
	if capacity > 0 && occupancy >= capacity {
		return domain.ErrRoleFull
	}
	r.s.nextPartID++
	participant.ID = r.s.nextPartID
	r.s.participants = append(r.s.participants, *participant)
	return nil
}

func (r memParticipants) Delete(_ context.Context, eventID int64, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, p := range r.s.participants {
		if p.EventID == eventID && p.UserID == userID {
			r.s.participants = append(r.s.participants[:i], r.s.participants[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotSignedUp
}

func (r memParticipants) FindByEventID(_ context.Context, eventID int64) ([]entities.Participant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entities.Participant
	for _, p := range r.s.participants {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memParticipants) FindByEventIDAndUserID(_ context.Context, eventID int64, userID string) (*entities.Participant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.participants {
		if p.EventID == eventID && p.UserID == userID {
			copied := p
			return &copied, nil
		}
	}
	return nil, nil
}

type memGuilds struct{ s *memStore }

var _ output.GuildSettingsRepository = memGuilds{}

func (r memGuilds) Get(_ context.Context, guildID string) (*entities.GuildSetting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	channel, ok := r.s.guildChannels[guildID]
	if !ok {
		return nil, nil
	}
	return &entities.GuildSetting{GuildID: guildID, ListeningChannel: channel}, nil
}

func (r memGuilds) Upsert(_ context.Context, setting *entities.GuildSetting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.guildChannels[setting.GuildID] = setting.ListeningChannel
	return nil
}

// fakeMessenger records outbound traffic and lets tests mark messages gone
// or make DM delivery fail for specific users.
type fakeMessenger struct {
	mu           sync.Mutex
	nextID       int
	order        []string          // message ids, oldest first
	contents     map[string]string // message id → content
	gone         map[string]bool
	dms          map[string][]string // user id → delivered texts
	dmErr        map[string]error
	threads      []string // message ids threads were opened on
	published    int
	searchLimits []int
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{
		contents: make(map[string]string),
		gone:     make(map[string]bool),
		dms:      make(map[string][]string),
		dmErr:    make(map[string]error),
	}
}

var _ output.Messenger = (*fakeMessenger)(nil)

func (f *fakeMessenger) Publish(_ context.Context, _ string, content string, _ []output.Control) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("m%d", f.nextID)
	f.order = append(f.order, id)
	f.contents[id] = content
	f.published++
	return id, nil
}

func (f *fakeMessenger) Edit(_ context.Context, _ string, messageID string, content string, _ []output.Control) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gone[messageID] {
		return output.ErrMessageGone
	}
	if _, ok := f.contents[messageID]; !ok {
		return output.ErrMessageGone
	}
	f.contents[messageID] = content
	return nil
}

func (f *fakeMessenger) SearchHistory(_ context.Context, _ string, limit int, match func(string) bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchLimits = append(f.searchLimits, limit)
	scanned := 0
	for i := len(f.order) - 1; i >= 0 && scanned < limit; i-- {
		id := f.order[i]
		if f.gone[id] {
			continue
		}
		scanned++
		if match(f.contents[id]) {
			return id, nil
		}
	}
	return "", nil
}

func (f *fakeMessenger) DirectMessage(_ context.Context, userID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.dmErr[userID]; err != nil {
		return err
	}
	f.dms[userID] = append(f.dms[userID], content)
	return nil
}

func (f *fakeMessenger) CreateThread(_ context.Context, _ string, messageID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threads = append(f.threads, messageID)
	return nil
}

// seed plants a pre-existing posted message, as if from an earlier run.
func (f *fakeMessenger) seed(content string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("m%d", f.nextID)
	f.order = append(f.order, id)
	f.contents[id] = content
	return id
}

// fakeCatalog is a fixed template catalog.
type fakeCatalog map[string]*entities.RoleTemplate

func (c fakeCatalog) Get(name string) (*entities.RoleTemplate, bool) {
	t, ok := c[name]
	return t, ok
}

// staticT echoes the message key; tests assert on keys, not copy.
type staticT struct{}

func (staticT) T(_, key string, _ map[string]any) string { return key }
