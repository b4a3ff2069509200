package share

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/quizmark/internal/utils"
)

var ErrNothingToShare = errors.New("page url is empty")

// Page is what gets shared.
type Page struct {
	URL   string
	Title string
}

// NativeSharer hands a page to the platform's share facility.
type NativeSharer interface {
	Available() bool
	Share(ctx context.Context, page Page) error
}

// Clipboard receives the page URL when no native share facility exists.
type Clipboard interface {
	WriteAll(text string) error
}

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Notifier shows a short-lived message to the user.
type Notifier interface {
	Notify(message string, kind NotificationKind)
}

const (
	MessageCopied     = "Link copied to clipboard"
	MessageCopyFailed = "Could not copy link"
)

// Helper shares the current page. It tries the native facility first and
// falls back to copying the URL. Nothing is retried.
type Helper struct {
	native    NativeSharer
	clipboard Clipboard
	notifier  Notifier
	logger    utils.Logger
}

// NewHelper builds a Helper; native may be nil.
func NewHelper(native NativeSharer, clipboard Clipboard, notifier Notifier, logger utils.Logger) *Helper {
	return &Helper{
		native:    native,
		clipboard: clipboard,
		notifier:  notifier,
		logger:    logger,
	}
}

func (h *Helper) Share(ctx context.Context, page Page) error {
	if page.URL == "" {
		return ErrNothingToShare
	}

	if h.native != nil && h.native.Available() {
		if err := h.native.Share(ctx, page); err != nil {
			h.logger.Error("Native share failed", "url", page.URL, "error", err)
			return fmt.Errorf("native share: %w", err)
		}
		return nil
	}

	if err := h.clipboard.WriteAll(page.URL); err != nil {
		h.logger.Error("Failed to copy page url", "url", page.URL, "error", err)
		h.notifier.Notify(MessageCopyFailed, NotifyError)
		return fmt.Errorf("copy to clipboard: %w", err)
	}

	h.notifier.Notify(MessageCopied, NotifySuccess)
	return nil
}
