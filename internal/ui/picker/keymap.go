package picker

import (
	"slices"
	"strings"
	"unicode"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/cpa750/git-sift/internal/config"
)

// Keymap holds the configured key bindings.
type Keymap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Quit   key.Binding
	Erase  key.Binding
}

// NewKeymap builds bindings from the [keys] configuration.
func NewKeymap(k config.KeysConfig) Keymap {
	return Keymap{
		Next:   binding("next", k.Next, k.NextAlternate),
		Prev:   binding("prev", k.Prev, k.PrevAlternate),
		Submit: binding("checkout", k.Submit),
		Quit:   binding("exit", k.Quit, k.QuitAlternate),
		Erase:  binding("erase", k.Erase),
	}
}

func binding(desc string, keys ...string) key.Binding {
	var set []string
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k != "" && !slices.Contains(set, k) {
			set = append(set, k)
		}
	}
	return key.NewBinding(
		key.WithKeys(set...),
		key.WithHelp(strings.Join(set, "/"), desc),
	)
}

// Action dispatches a key press in the order quit, navigation, submit,
// printable text, erase. Anything else is ActionNone.
func (km Keymap) Action(msg tea.KeyPressMsg) Action {
	switch {
	case key.Matches(msg, km.Quit):
		return Action{Kind: ActionQuit}
	case key.Matches(msg, km.Next):
		return Action{Kind: ActionNext}
	case key.Matches(msg, km.Prev):
		return Action{Kind: ActionPrev}
	case key.Matches(msg, km.Submit):
		return Action{Kind: ActionSubmit}
	}

	if text := printable(msg.Text); text != "" {
		return Action{Kind: ActionInsert, Text: text}
	}

	if key.Matches(msg, km.Erase) {
		return Action{Kind: ActionErase}
	}
	return Action{Kind: ActionNone}
}

// printable drops control runes from typed or pasted text.
func printable(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, text)
}

// Hint renders the one-line key help shown under the query box.
func (km Keymap) Hint() string {
	parts := make([]string, 0, 4)
	for _, b := range []key.Binding{km.Next, km.Prev, km.Submit, km.Quit} {
		h := b.Help()
		parts = append(parts, "["+h.Key+": "+h.Desc+"]")
	}
	return strings.Join(parts, " ")
}
