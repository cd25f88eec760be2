package discord

import (
	"github.com/charmbracelet/log"

	"github.com/vtstv/EventBot/internal/ports/input"
	"github.com/vtstv/EventBot/internal/ports/output"
	"github.com/vtstv/EventBot/internal/templates"
)

// Handler handles Discord interactions using the engine's use cases.
type Handler struct {
	eventUseCase  input.EventUseCase
	rosterUseCase input.RosterUseCase
	guildRepo     output.GuildSettingsRepository
	catalog       *templates.Catalog
	translator    output.T
	dialogs       *dialogManager
	log           *log.Logger
}

func NewHandler(
	eventUseCase input.EventUseCase,
	rosterUseCase input.RosterUseCase,
	guildRepo output.GuildSettingsRepository,
	catalog *templates.Catalog,
	translator output.T,
	logger *log.Logger,
) *Handler {
	return &Handler{
		eventUseCase:  eventUseCase,
		rosterUseCase: rosterUseCase,
		guildRepo:     guildRepo,
		catalog:       catalog,
		translator:    translator,
		dialogs:       newDialogManager(),
		log:           logger,
	}
}
