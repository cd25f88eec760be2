package application

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtstv/EventBot/internal/domain"
)

func TestSignupTemplated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "raid")

	view, err := env.roster.Signup(ctx, event.ID, "user-a", "Tank")
	require.NoError(t, err)
	assert.Contains(t, view, "🛡️ Tank (1/1)")
	assert.Contains(t, view, "<@user-a>")
}

func TestSignupInvalidRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "raid")

	_, err := env.roster.Signup(ctx, event.ID, "user-a", "Bard")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestSignupDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "raid")

	_, err := env.roster.Signup(ctx, event.ID, "user-a", "Tank")
	require.NoError(t, err)
	_, err = env.roster.Signup(ctx, event.ID, "user-a", "DPS")
	assert.ErrorIs(t, err, domain.ErrAlreadySignedUp)

	participants, err := memParticipants{s: env.store}.FindByEventID(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, participants, 1)
}

func TestSignupRoleFull(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "raid")

	_, err := env.roster.Signup(ctx, event.ID, "user-a", "DPS")
	require.NoError(t, err)
	_, err = env.roster.Signup(ctx, event.ID, "user-b", "DPS")
	require.NoError(t, err)

	_, err = env.roster.Signup(ctx, event.ID, "user-c", "DPS")
	assert.ErrorIs(t, err, domain.ErrRoleFull)

	// A different role on the same event still has room.
	_, err = env.roster.Signup(ctx, event.ID, "user-c", "Tank")
	assert.NoError(t, err)
}

func TestSignupClosedEvent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "raid")
	require.NoError(t, env.events.CloseEvent(ctx, event.ID, testCreator, false))

	_, err := env.roster.Signup(ctx, event.ID, "user-a", "Tank")
	assert.ErrorIs(t, err, domain.ErrEventNotOpen)

	participants, err := memParticipants{s: env.store}.FindByEventID(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, participants)
}

func TestSignupEventNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.roster.Signup(context.Background(), 404, "user-a", "Tank")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestSignupUntyped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "")

	// Any role argument collapses to the generic participant bucket.
	view, err := env.roster.Signup(ctx, event.ID, "user-a", "whatever")
	require.NoError(t, err)
	assert.Contains(t, view, "**Participants (1):**")

	participant, err := memParticipants{s: env.store}.FindByEventIDAndUserID(ctx, event.ID, "user-a")
	require.NoError(t, err)
	require.NotNil(t, participant)
	assert.Equal(t, domain.GenericRole, participant.RoleName)
}

func TestSignupAfterTemplateRemoved(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "raid")
	_, err := env.roster.Signup(ctx, event.ID, "user-a", "Tank")
	require.NoError(t, err)

	delete(env.catalog, "raid")

	// The event degrades to untyped signup instead of breaking.
	view, err := env.roster.Signup(ctx, event.ID, "user-b", "Tank")
	require.NoError(t, err)
	assert.Contains(t, view, "**Participants (2):**")
	assert.NotContains(t, view, "**Roles:**")
}

func TestCancel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "raid")
	_, err := env.roster.Signup(ctx, event.ID, "user-a", "Tank")
	require.NoError(t, err)

	view, err := env.roster.Cancel(ctx, event.ID, "user-a")
	require.NoError(t, err)
	assert.Contains(t, view, "🛡️ Tank (0/1)")
	assert.NotContains(t, view, "<@user-a>")
}

func TestCancelNotSignedUp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "raid")

	_, err := env.roster.Cancel(ctx, event.ID, "user-a")
	assert.ErrorIs(t, err, domain.ErrNotSignedUp)
}

func TestSignupCancelRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "raid")

	before, err := env.roster.Render(ctx, event.ID)
	require.NoError(t, err)

	_, err = env.roster.Signup(ctx, event.ID, "user-a", "DPS")
	require.NoError(t, err)
	after, err := env.roster.Cancel(ctx, event.ID, "user-a")
	require.NoError(t, err)

	assert.Equal(t, before, after)
}

func TestConcurrentSignupsRespectCapacity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "raid")

	const attempts = 24
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := "user-" + strings.Repeat("x", i+1)
			_, errs[i] = env.roster.Signup(ctx, event.ID, user, "DPS")
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, err := range errs {
		if err == nil {
			accepted++
			continue
		}
		require.ErrorIs(t, err, domain.ErrRoleFull)
	}
	assert.Equal(t, 2, accepted)

	participants, err := memParticipants{s: env.store}.FindByEventID(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, participants, 2)
}
