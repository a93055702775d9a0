// Package output provides styled terminal rendering helpers for sessionizer.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color constants for consistent styling across the CLI.
var (
	ColorPrimary = lipgloss.Color("#64b5f6")
	ColorSuccess = lipgloss.Color("#66bb6a")
	ColorError   = lipgloss.Color("#ef5350")
	ColorWarning = lipgloss.Color("#fff59d")
	ColorMuted   = lipgloss.Color("#888888")
)

// Styles provides reusable lipgloss styles. They are rebuilt by SetNoColor.
var (
	StyleHeader  lipgloss.Style
	StyleSuccess lipgloss.Style
	StyleError   lipgloss.Style
	StyleWarning lipgloss.Style
	StyleMuted   lipgloss.Style

	// StyleLabel pads check names into a column.
	StyleLabel lipgloss.Style
)

const labelWidth = 12

func init() {
	SetNoColor(false)
}

// SetNoColor disables or enables color output globally by reassigning every
// package-level style.
func SetNoColor(disabled bool) {
	if disabled {
		plain := lipgloss.NewStyle()
		StyleHeader = plain
		StyleSuccess = plain
		StyleError = plain
		StyleWarning = plain
		StyleMuted = plain
		StyleLabel = plain.Width(labelWidth)
		return
	}

	StyleHeader = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleLabel = lipgloss.NewStyle().Width(labelWidth)
}

// ColorDisabled reports whether styling should be off for f: the NO_COLOR
// convention is honored and non-terminals never get escape codes.
func ColorDisabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	fd := f.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// Check is the outcome of one doctor check.
type Check int

const (
	CheckOK Check = iota
	CheckWarn
	CheckFail
)

// Status renders a check line: a mark, a padded label and detail.
func Status(c Check, label, detail string) string {
	var mark string
	switch c {
	case CheckOK:
		mark = StyleSuccess.Render("ok")
	case CheckWarn:
		mark = StyleWarning.Render("--")
	default:
		mark = StyleError.Render("!!")
	}
	return mark + "  " + StyleLabel.Render(label) + StyleMuted.Render(detail)
}

// Header renders a section title.
func Header(title string) string {
	return StyleHeader.Render(title)
}
