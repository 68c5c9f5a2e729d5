// ABOUTME: Shared formatting and validation helpers for CLI commands
// ABOUTME: Used by the table renderers in search, history, business and contact
package commands

import (
	"fmt"
	"strings"
)

// truncate shortens a string to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// singleLine collapses all whitespace runs to single spaces for table cells
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// joinName joins the non-empty name parts
func joinName(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
