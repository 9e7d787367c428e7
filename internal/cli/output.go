package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// colorEnabled is on when stdout is a terminal, unless NO_COLOR is set.
var colorEnabled = true

func init() {
	_, noColor := os.LookupEnv("NO_COLOR")
	colorEnabled = !noColor && IsTerminal(os.Stdout)
}

// SetColorEnabled overrides terminal detection, e.g. for --no-color.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + colorReset
}

// Green is used for recipe names and confirmations.
func Green(s string) string { return paint(colorGreen, s) }

// Red is used for errors.
func Red(s string) string { return paint(colorRed, s) }

// Yellow is used for status messages that replace the recipe panel.
func Yellow(s string) string { return paint(colorYellow, s) }

// Cyan is used for remix text.
func Cyan(s string) string { return paint(colorCyan, s) }

// Bold is used for headings.
func Bold(s string) string { return paint(colorBold, s) }

// Gray is used for metadata and list numbers.
func Gray(s string) string { return paint(colorGray, s) }

// MaxListNameWidth caps how much of a saved name is shown in a list.
const MaxListNameWidth = 50

// WriteNumbered writes one "#n  name" line per name. Numbers are padded to
// the widest one so names line up, and names longer than maxWidth runes are
// cut with "...". A maxWidth of 0 leaves names whole.
func WriteNumbered(w io.Writer, names []string, maxWidth int) {
	width := len("#" + strconv.Itoa(len(names)))
	for i, name := range names {
		label := "#" + strconv.Itoa(i+1)
		pad := strings.Repeat(" ", width-len(label))
		if maxWidth > 0 {
			name = truncateName(name, maxWidth)
		}
		fmt.Fprintf(w, "%s%s  %s\n", Gray(label), pad, name)
	}
}

// truncateName cuts s to maxWidth runes, the last three being "...".
func truncateName(s string, maxWidth int) string {
	if utf8.RuneCountInString(s) <= maxWidth {
		return s
	}
	const ellipsis = "..."
	if maxWidth <= len(ellipsis) {
		return string([]rune(s)[:maxWidth])
	}
	return string([]rune(s)[:maxWidth-len(ellipsis)]) + ellipsis
}
