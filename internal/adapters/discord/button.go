package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/vtstv/EventBot/internal/application"
	"github.com/vtstv/EventBot/internal/domain"
)

// HandleComponent routes button presses on posted event messages. The
// custom id encodes the event and role, so no extra lookup is needed.
func (h *Handler) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	customID := i.MessageComponentData().CustomID
	action, eventID, roleName, ok := application.ParseControlID(customID)
	if !ok {
		h.log.Warn("unroutable component interaction", "custom_id", customID)
		return
	}
	user := interactionUser(i)
	if user == nil {
		return
	}

	switch action {
	case application.ActionSignup:
		_, err := h.rosterUseCase.Signup(ctx, eventID, user.ID, roleName)
		if err != nil {
			if domain.Code(err) == "" {
				h.log.Error("signup failed", "event_id", eventID, "user_id", user.ID, "error", err)
			}
			h.respondError(s, i, err)
			return
		}
		respondEphemeral(s, i.Interaction, h.translator.T(interactionLocale(i), "signup_success",
			map[string]any{"Role": roleName}))
	case application.ActionCancel:
		_, err := h.rosterUseCase.Cancel(ctx, eventID, user.ID)
		if err != nil {
			if domain.Code(err) == "" {
				h.log.Error("cancel failed", "event_id", eventID, "user_id", user.ID, "error", err)
			}
			h.respondError(s, i, err)
			return
		}
		respondEphemeral(s, i.Interaction, h.translator.T(interactionLocale(i), "cancel_success", nil))
	}
}
