package discord

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/vtstv/EventBot/internal/domain"
)

const startDateLayout = "2006-01-02 15:04"

var dateParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// ParseStartDate parses "YYYY-MM-DD HH:MM" in local time. Input that does
// not match the strict layout falls back to natural-language parsing
// ("tomorrow 19:00"), so DM dialogs accept relaxed input; the engine only
// ever receives the parsed time.
func ParseStartDate(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, domain.ErrInvalidDate
	}
	if t, err := time.ParseInLocation(startDateLayout, input, time.Local); err == nil {
		return t, nil
	}
	result, err := dateParser.Parse(input, time.Now())
	if err != nil || result == nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return result.Time, nil
}

func FormatStartDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(startDateLayout)
}
