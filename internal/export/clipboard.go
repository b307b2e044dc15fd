package export

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/hammamikhairi/doughcalc/internal/domain"
)

// CopiedMessage confirms a successful copy.
const CopiedMessage = "Markdown copied to clipboard!"

// ErrClipboardUnavailable is returned when no system clipboard tool exists.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Compile-time interface check.
var _ domain.Clipboard = SystemClipboard{}

// SystemClipboard writes to the operating system clipboard.
type SystemClipboard struct{}

// WriteAll replaces the clipboard contents with text.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

// Copy writes text to clip.
func Copy(clip domain.Clipboard, text string) error {
	if err := clip.WriteAll(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}
