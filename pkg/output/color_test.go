package output

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestSetNoColor(t *testing.T) {
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })

	assert.Equal(t, "plain", StyleError.Render("plain"))
	assert.Equal(t, "plain", Header("plain"))
	assert.Equal(t, lipgloss.NoColor{}, StyleWarning.GetForeground())
}

func TestSetNoColorRestoresStyles(t *testing.T) {
	SetNoColor(true)
	SetNoColor(false)

	assert.Equal(t, ColorPrimary, StyleHeader.GetForeground())
	assert.True(t, StyleHeader.GetBold())
	assert.Equal(t, ColorWarning, StyleWarning.GetForeground())
	assert.Equal(t, ColorError, StyleError.GetForeground())
	assert.Equal(t, labelWidth, StyleLabel.GetWidth())
}

func TestStatus(t *testing.T) {
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })

	tests := []struct {
		check  Check
		label  string
		detail string
		prefix string
	}{
		{CheckOK, "tmux", "3.4", "ok  tmux"},
		{CheckWarn, "search", "/missing", "--  search"},
		{CheckFail, "fzf", "not found", "!!  fzf"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			line := Status(tt.check, tt.label, tt.detail)
			assert.True(t, strings.HasPrefix(line, tt.prefix), "line %q", line)
			assert.True(t, strings.HasSuffix(line, tt.detail), "line %q", line)
		})
	}
}

func TestColorDisabled(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	// Regular files are never terminals.
	assert.True(t, ColorDisabled(f))

	t.Setenv("NO_COLOR", "1")
	assert.True(t, ColorDisabled(os.Stdout))
}
