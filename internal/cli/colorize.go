package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

// shouldColorize reports whether writer is a terminal.
func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func colorStatus(label string, ok, colorize bool) string {
	if !colorize {
		return label
	}
	if ok {
		return ansiGreen + label + ansiReset
	}
	return ansiRed + label + ansiReset
}
