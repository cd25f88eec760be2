package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/vtstv/EventBot/internal/domain/entities"
)

var adminOnly = int64(discordgo.PermissionAdministrator)

// commandDefinitions lists the administrator-facing slash commands. Each one
// maps 1:1 to an engine operation; create_event starts the DM dialog.
func commandDefinitions() []*discordgo.ApplicationCommand {
	eventIDOption := func() *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "event_id",
			Description: "ID of the event",
			Required:    true,
		}
	}
	return []*discordgo.ApplicationCommand{
		{
			Name:                     "create_event",
			Description:              "Create a new event",
			DefaultMemberPermissions: &adminOnly,
		},
		{
			Name:                     "edit_event",
			Description:              "Edit an existing event",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				eventIDOption(),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "field",
					Description: "Field to change",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "name", Value: "name"},
						{Name: "description", Value: "description"},
						{Name: "start_date", Value: "start_date"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "value",
					Description: "New value",
					Required:    true,
				},
			},
		},
		{
			Name:                     "close_event",
			Description:              "Close an event",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				eventIDOption(),
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "notify",
					Description: "Notify participants via DM (default: yes)",
				},
			},
		},
		{
			Name:                     "open_event",
			Description:              "Reopen a closed event",
			DefaultMemberPermissions: &adminOnly,
			Options:                  []*discordgo.ApplicationCommandOption{eventIDOption()},
		},
		{
			Name:                     "delete_event",
			Description:              "Delete an event",
			DefaultMemberPermissions: &adminOnly,
			Options:                  []*discordgo.ApplicationCommandOption{eventIDOption()},
		},
		{
			Name:                     "setup",
			Description:              "Configure the channel where events are posted",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "Channel for event messages",
					Required:     true,
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
				},
			},
		},
	}
}

func commandOptions(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		byName[opt.Name] = opt
	}
	return byName
}

func (h *Handler) HandleEditEvent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	opts := commandOptions(i)
	eventID := opts["event_id"].IntValue()
	field := opts["field"].StringValue()
	value := opts["value"].StringValue()

	if err := h.eventUseCase.EditEvent(ctx, eventID, field, value, interactionUser(i).ID); err != nil {
		h.respondError(s, i, err)
		return
	}
	respondEphemeral(s, i.Interaction, h.translator.T(interactionLocale(i), "event_updated", nil))
}

func (h *Handler) HandleCloseEvent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	opts := commandOptions(i)
	eventID := opts["event_id"].IntValue()
	notify := true
	if opt, ok := opts["notify"]; ok {
		notify = opt.BoolValue()
	}

	if err := h.eventUseCase.CloseEvent(ctx, eventID, interactionUser(i).ID, notify); err != nil {
		h.respondError(s, i, err)
		return
	}
	respondEphemeral(s, i.Interaction, h.translator.T(interactionLocale(i), "event_closed",
		map[string]any{"EventID": eventID}))
}

func (h *Handler) HandleOpenEvent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	eventID := commandOptions(i)["event_id"].IntValue()

	if err := h.eventUseCase.OpenEvent(ctx, eventID, interactionUser(i).ID); err != nil {
		h.respondError(s, i, err)
		return
	}
	respondEphemeral(s, i.Interaction, h.translator.T(interactionLocale(i), "event_reopened",
		map[string]any{"EventID": eventID}))
}

func (h *Handler) HandleDeleteEvent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	eventID := commandOptions(i)["event_id"].IntValue()

	if err := h.eventUseCase.DeleteEvent(ctx, eventID, interactionUser(i).ID); err != nil {
		h.respondError(s, i, err)
		return
	}
	respondEphemeral(s, i.Interaction, h.translator.T(interactionLocale(i), "event_deleted",
		map[string]any{"EventID": eventID}))
}

func (h *Handler) HandleSetup(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	channel := commandOptions(i)["channel"].ChannelValue(nil)

	err := h.guildRepo.Upsert(ctx, &entities.GuildSetting{
		GuildID:          i.GuildID,
		ListeningChannel: channel.ID,
	})
	if err != nil {
		h.log.Error("could not store guild settings", "guild_id", i.GuildID, "error", err)
		h.respondError(s, i, err)
		return
	}
	respondEphemeral(s, i.Interaction, h.translator.T(interactionLocale(i), "channel_configured",
		map[string]any{"ChannelID": channel.ID}))
}
