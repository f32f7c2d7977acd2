package system

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// SystemClipboard copies text to the OS clipboard.
type SystemClipboard struct{}

// Copy writes text to the clipboard
func (SystemClipboard) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not supported on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
