package application

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vtstv/EventBot/internal/domain"
	"github.com/vtstv/EventBot/internal/domain/entities"
	"github.com/vtstv/EventBot/internal/ports/output"
)

// Control actions routed from button presses.
const (
	ActionSignup = "signup"
	ActionCancel = "cancel"
)

// SignupControlID encodes a signup button identifier: signup_<event>_<role>.
func SignupControlID(eventID int64, roleName string) string {
	return fmt.Sprintf("signup_%d_%s", eventID, roleName)
}

// CancelControlID encodes a cancel button identifier: cancel_<event>.
func CancelControlID(eventID int64) string {
	return fmt.Sprintf("cancel_%d", eventID)
}

// ParseControlID decodes a button identifier. Role names may themselves
// contain underscores, so the id is split at most three ways.
func ParseControlID(customID string) (action string, eventID int64, roleName string, ok bool) {
	parts := strings.SplitN(customID, "_", 3)
	if len(parts) < 2 {
		return "", 0, "", false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", 0, "", false
	}
	switch parts[0] {
	case ActionSignup:
		if len(parts) != 3 || parts[2] == "" {
			return "", 0, "", false
		}
		return ActionSignup, id, parts[2], true
	case ActionCancel:
		if len(parts) != 2 {
			return "", 0, "", false
		}
		return ActionCancel, id, "", true
	}
	return "", 0, "", false
}

// Controls builds the interactive buttons for an event: one signup button
// per role (or a single generic one when untyped) plus a cancel button.
func Controls(event *entities.Event, scheme entities.RoleScheme) []output.Control {
	var controls []output.Control
	if scheme.Templated() {
		for _, role := range scheme.Roles() {
			controls = append(controls, output.Control{
				ID:    SignupControlID(event.ID, role.Name),
				Label: "Sign up as " + role.Name,
				Emoji: role.Emoji,
			})
		}
	} else {
		controls = append(controls, output.Control{
			ID:    SignupControlID(event.ID, domain.GenericRole),
			Label: "Sign Up",
		})
	}
	controls = append(controls, output.Control{
		ID:     CancelControlID(event.ID),
		Label:  "Cancel Signup",
		Danger: true,
	})
	return controls
}
