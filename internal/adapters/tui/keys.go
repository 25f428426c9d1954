package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Log      key.Binding
	Works    key.Binding
	Lab      key.Binding
	Bio      key.Binding
	Next     key.Binding
	Prev     key.Binding
	Language key.Binding
	Filter   key.Binding
	Env      key.Binding
	Pads     key.Binding
	Quit     key.Binding
}

// newKeyMap builds bindings whose help text comes from t, so the help line
// follows the active locale.
func newKeyMap(t func(string) string, padKeys []string) keyMap {
	padHelp := strings.Join(padKeys, "")
	return keyMap{
		Log:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", t("nav.log"))),
		Works:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", t("nav.works"))),
		Lab:      key.NewBinding(key.WithKeys("3"), key.WithHelp("3", t("nav.lab"))),
		Bio:      key.NewBinding(key.WithKeys("4"), key.WithHelp("4", t("nav.bio"))),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", t("help.pages"))),
		Prev:     key.NewBinding(key.WithKeys("shift+tab")),
		Language: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", t("help.language"))),
		Filter:   key.NewBinding(key.WithKeys("left", "right", "[", "]"), key.WithHelp("←/→", t("help.filter"))),
		Env:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", t("help.environment"))),
		Pads:     key.NewBinding(key.WithKeys(padKeys...), key.WithHelp(padHelp, t("help.pads"))),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", t("help.quit"))),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Language, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Log, k.Works, k.Lab, k.Bio},
		{k.Filter, k.Pads, k.Env},
		{k.Next, k.Language, k.Quit},
	}
}
