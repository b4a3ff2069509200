package share

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/SAP-F-2025/quizmark/internal/events"
	"github.com/atotto/clipboard"
)

// EventSharer shares a page by publishing a page.shared event.
type EventSharer struct {
	publisher events.EventPublisher
}

func NewEventSharer(publisher events.EventPublisher) *EventSharer {
	return &EventSharer{publisher: publisher}
}

func (s *EventSharer) Available() bool {
	return s != nil && s.publisher != nil
}

func (s *EventSharer) Share(ctx context.Context, page Page) error {
	return s.publisher.Publish(ctx, events.NewEvent(events.EventPageShared, events.PageSharedEvent{
		URL:      page.URL,
		Title:    page.Title,
		SharedAt: time.Now().UTC(),
	}))
}

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard unsupported on this system")
	}
	return clipboard.WriteAll(text)
}

// TerminalNotifier prints a message and erases it after Duration.
type TerminalNotifier struct {
	mu       sync.Mutex
	out      io.Writer
	duration time.Duration
}

func NewTerminalNotifier(out io.Writer, duration time.Duration) *TerminalNotifier {
	return &TerminalNotifier{out: out, duration: duration}
}

func (n *TerminalNotifier) Notify(message string, kind NotificationKind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	prefix := "✓"
	if kind == NotifyError {
		prefix = "✗"
	}
	fmt.Fprintf(n.out, "\r%s %s", prefix, message)

	if n.duration <= 0 {
		fmt.Fprintln(n.out)
		return
	}
	time.AfterFunc(n.duration, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		fmt.Fprint(n.out, "\r\033[K")
	})
}
