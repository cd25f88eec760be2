package discord

import (
	"github.com/bwmarrin/discordgo"

	pkgdiscord "github.com/vtstv/EventBot/pkg/discord"
)

// interactionUser works for both guild interactions (Member) and DMs (User).
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func interactionLocale(i *discordgo.InteractionCreate) string {
	return string(i.Locale)
}

func respondEphemeral(s *discordgo.Session, i *discordgo.Interaction, content string) {
	_ = s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// respondError translates err and answers the interaction ephemerally.
func (h *Handler) respondError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	key := pkgdiscord.MessageKey(err)
	respondEphemeral(s, i.Interaction, h.translator.T(interactionLocale(i), key, nil))
}
