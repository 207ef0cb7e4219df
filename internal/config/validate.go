package config

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Valid enum values for configuration fields.
var (
	ValidBackends   = []string{BackendGit, BackendGoGit}
	ValidThemeNames = []string{"none", "default", "dracula", "nord", "gruvbox"}
	ValidThemeModes = []string{"auto", "light", "dark"}
)

// ValidateBackend validates a backend value against ValidBackends.
// Exported for use in CLI flag validation.
func ValidateBackend(backend string) error {
	return validateEnum(backend, "backend", ValidBackends)
}

// Validate checks enum settings and keybinds.
func (c *Config) Validate() error {
	if err := ValidateBackend(c.Backend); err != nil {
		return err
	}
	if err := validateEnum(c.Theme.Name, "theme.name", ValidThemeNames); err != nil {
		return err
	}
	if err := validateEnum(c.Theme.Mode, "theme.mode", ValidThemeModes); err != nil {
		return err
	}
	return c.Keys.Validate()
}

// Validate checks that every keybind is set and that no key triggers two
// different actions. A key bound to both slots of the same action is fine.
// erase must not be a printable character, since typed text wins over it.
func (k KeysConfig) Validate() error {
	bindings := []struct {
		field  string
		action string
		key    string
	}{
		{"next", "next", k.Next},
		{"next_alternate", "next", k.NextAlternate},
		{"prev", "prev", k.Prev},
		{"prev_alternate", "prev", k.PrevAlternate},
		{"submit", "submit", k.Submit},
		{"quit", "quit", k.Quit},
		{"quit_alternate", "quit", k.QuitAlternate},
		{"erase", "erase", k.Erase},
	}

	owner := make(map[string]string, len(bindings))
	for _, b := range bindings {
		key := strings.TrimSpace(b.key)
		if key == "" {
			return fmt.Errorf("keys.%s must not be empty", b.field)
		}
		if prev, ok := owner[key]; ok && prev != b.action {
			return fmt.Errorf("key %q is bound to both %s and %s", key, prev, b.action)
		}
		owner[key] = b.action
	}

	erase := strings.TrimSpace(k.Erase)
	if r, size := utf8.DecodeRuneInString(erase); size == len(erase) && unicode.IsPrint(r) {
		return fmt.Errorf("keys.erase %q is a printable character and would be typed instead", erase)
	}
	return nil
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
