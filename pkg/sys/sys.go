// Package sys provide system utilities with the same API across OSes.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

// SIGWINCH is the window size change signal.
const SIGWINCH = sigWINCH

// WinSize queries the size of the terminal referenced by the given file. It
// returns (-1, -1) if the file is not a terminal.
func WinSize(file *os.File) (row, col int) { return winSize(file) }

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NotifyResize returns a channel that receives a value whenever the size of the
// terminal changes, and a function that stops the notification. Notifications
// that arrive while a previous one has not been consumed are coalesced.
func NotifyResize() (<-chan struct{}, func()) { return notifyResize() }
