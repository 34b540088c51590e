package logging

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/you/wifiattend/domain"
)

// ActivityLogger writes one line per activity event.
// Events are not persisted anywhere.
type ActivityLogger struct {
	logger *log.Logger
}

// NewActivityLogger creates a logger writing to w
func NewActivityLogger(w io.Writer) *ActivityLogger {
	return &ActivityLogger{logger: log.New(w, "activity: ", log.LstdFlags)}
}

// LogEvent implements domain.ActivityLogger
func (l *ActivityLogger) LogEvent(ctx context.Context, event *domain.ActivityEvent) error {
	if event == nil {
		return nil
	}
	l.logger.Print(formatEvent(event))
	return nil
}

func formatEvent(event *domain.ActivityEvent) string {
	var b strings.Builder
	b.WriteString(string(event.EventType))
	if event.Role != "" {
		fmt.Fprintf(&b, " role=%s", event.Role)
	}
	if event.UserID != "" {
		fmt.Fprintf(&b, " user=%s", event.UserID)
	}
	fmt.Fprintf(&b, " success=%t", event.Success)

	keys := make([]string, 0, len(event.Metadata))
	for k := range event.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, event.Metadata[k])
	}
	if event.ErrorMsg != "" {
		fmt.Fprintf(&b, " error=%q", event.ErrorMsg)
	}
	return b.String()
}

var _ domain.ActivityLogger = (*ActivityLogger)(nil)
