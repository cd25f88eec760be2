package discord

import "github.com/vtstv/EventBot/internal/domain"

// MessageKey maps an error to the i18n key of its user-facing message.
// Non-domain errors collapse to a generic failure message; the caller is
// expected to log them.
func MessageKey(err error) string {
	if err == nil {
		return ""
	}
	if code := domain.Code(err); code != "" {
		return "err_" + code
	}
	return "err_generic"
}
