package errors

import (
	"fmt"
	"strings"
)

// FormatUserError returns a user-friendly error message with actionable guidance.
// It examines the error chain and provides context-appropriate help text.
func FormatUserError(err error) string {
	if err == nil {
		return ""
	}

	var configErr *ConfigError
	if As(err, &configErr) {
		return formatConfigError(configErr)
	}

	var procErr *ProcessError
	if As(err, &procErr) {
		return formatProcessError(procErr)
	}

	return err.Error()
}

// formatConfigError formats a ConfigError with actionable guidance.
func formatConfigError(err *ConfigError) string {
	var b strings.Builder

	if err.Field != "" {
		fmt.Fprintf(&b, "Configuration error in '%s': %s\n", err.Field, err.Message)
	} else {
		fmt.Fprintf(&b, "Configuration error: %s\n", err.Message)
	}

	b.WriteString("\nTo fix this:\n")
	b.WriteString("  • Pass a config file with --config, or create ~/.config/sessionizer/config.yaml\n")
	b.WriteString("  • Run 'sessionizer config show' to inspect the effective configuration\n")

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}

// formatProcessError formats a ProcessError with guidance for the program involved.
func formatProcessError(err *ProcessError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s error during %s: %s\n", err.Program, err.Operation, err.Message)

	switch err.Program {
	case "fzf":
		b.WriteString("\nThe picker could not run. To fix this:\n")
		b.WriteString("  • Install fzf and make sure it is on your PATH\n")
		b.WriteString("  • Or point picker.command at another line-oriented fuzzy finder\n")
		b.WriteString("  • Use 'sessionizer list' for non-interactive output\n")

	case "tmux":
		b.WriteString("\nThe tmux session could not be opened. To fix this:\n")
		b.WriteString("  • Make sure tmux is installed and on your PATH\n")
		b.WriteString("  • Run 'sessionizer doctor' to check the tmux version\n")

	default:
		b.WriteString("\nTo troubleshoot:\n")
		b.WriteString("  • Run with --verbose for more details\n")
	}

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}
