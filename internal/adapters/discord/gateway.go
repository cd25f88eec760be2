package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/vtstv/EventBot/internal/ports/output"
)

var _ output.Messenger = (*Gateway)(nil)

// Gateway implements the output.Messenger port on a discordgo session.
type Gateway struct {
	session *discordgo.Session
	log     *log.Logger
}

func NewGateway(session *discordgo.Session, logger *log.Logger) *Gateway {
	return &Gateway{session: session, log: logger}
}

func (g *Gateway) Publish(ctx context.Context, channelID, content string, controls []output.Control) (string, error) {
	msg, err := g.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    content,
		Components: buildComponents(controls),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	return msg.ID, nil
}

func (g *Gateway) Edit(ctx context.Context, channelID, messageID, content string, controls []output.Control) error {
	components := buildComponents(controls)
	_, err := g.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         messageID,
		Channel:    channelID,
		Content:    &content,
		Components: &components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		if isUnknownMessage(err) {
			return output.ErrMessageGone
		}
		return fmt.Errorf("edit message: %w", err)
	}
	return nil
}

func (g *Gateway) SearchHistory(ctx context.Context, channelID string, limit int, match func(content string) bool) (string, error) {
	messages, err := g.session.ChannelMessages(channelID, limit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("fetch channel history: %w", err)
	}
	for _, m := range messages {
		if match(m.Content) {
			return m.ID, nil
		}
	}
	return "", nil
}

func (g *Gateway) DirectMessage(ctx context.Context, userID, content string) error {
	channel, err := g.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("open dm channel: %w", err)
	}
	if _, err := g.session.ChannelMessageSend(channel.ID, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send dm: %w", err)
	}
	return nil
}

func (g *Gateway) CreateThread(ctx context.Context, channelID, messageID, name string) error {
	_, err := g.session.MessageThreadStartComplex(channelID, messageID, &discordgo.ThreadStart{
		Name:                name,
		AutoArchiveDuration: 1440,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("start thread: %w", err)
	}
	return nil
}

const buttonsPerRow = 5

func buildComponents(controls []output.Control) []discordgo.MessageComponent {
	var buttons []discordgo.MessageComponent
	for _, c := range controls {
		style := discordgo.PrimaryButton
		if c.Danger {
			style = discordgo.DangerButton
		}
		button := discordgo.Button{
			Label:    c.Label,
			Style:    style,
			CustomID: c.ID,
		}
		if c.Emoji != "" {
			button.Emoji = &discordgo.ComponentEmoji{Name: c.Emoji}
		}
		buttons = append(buttons, button)
	}
	var components []discordgo.MessageComponent
	for i := 0; i < len(buttons); i += buttonsPerRow {
		end := min(i+buttonsPerRow, len(buttons))
		components = append(components, discordgo.ActionsRow{Components: buttons[i:end]})
	}
	return components
}

func isUnknownMessage(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		return restErr.Message.Code == discordgo.ErrCodeUnknownMessage
	}
	return false
}
