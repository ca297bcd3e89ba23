package pane

import "golang.org/x/term"

// TerminalSize returns the (cols, rows) of the terminal backing the given
// file descriptor (typically os.Stdout.Fd()), so a Screen implementation
// can size its root pane without reinventing the ioctl call itself (spec
// §2a: "pane package's TerminalSize helper").
func TerminalSize(fd int) (cols, rows int, err error) {
	return term.GetSize(fd)
}
