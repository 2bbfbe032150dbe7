package tui

import (
	"errors"

	"github.com/atotto/clipboard"
)

// errNoClipboard is returned when no clipboard helper is installed.
var errNoClipboard = errors.New("no clipboard command available (install wl-clipboard or xclip)")

// copyText copies text to the system clipboard.
func copyText(text string) error {
	if clipboard.Unsupported {
		return errNoClipboard
	}
	return clipboard.WriteAll(text)
}
