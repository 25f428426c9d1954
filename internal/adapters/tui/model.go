package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"kashbill/internal/application"
	"kashbill/internal/domain"
	"kashbill/internal/domain/entities"
)

// navItem is one header entry, in display order.
type navItem struct {
	path string
	page entities.PageID
	key  string // translation key
}

var navItems = []navItem{
	{path: "/log", page: entities.PageLog, key: "nav.log"},
	{path: "/works", page: entities.PageWorks, key: "nav.works"},
	{path: "/lab", page: entities.PageLab, key: "nav.lab"},
	{path: "/", page: entities.PageBio, key: "nav.bio"},
}

// navigateMsg asks the model to route to path.
type navigateMsg struct{ path string }

// Navigate returns a command routing the UI to path.
func Navigate(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path} }
}

// Deps are the services the UI drives.
type Deps struct {
	Locale *application.LocaleService
	Nav    *application.NavigationController
	Lab    *application.LabService
	Works  *application.WorksService
	Site   *entities.Site
	Logger *zap.Logger
	Now    func() time.Time
}

// Model is the Bubble Tea model of the portfolio.
type Model struct {
	deps      Deps
	startPath string
	help      help.Model
	width     int
	category  int
	notice    string
	bio       *glamour.TermRenderer
}

// NewModel builds the UI; Init routes to startPath.
func NewModel(deps Deps, startPath string) Model {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	h := help.New()
	h.ShowAll = true
	m := Model{
		deps:      deps,
		startPath: startPath,
		help:      h,
		width:     100,
	}
	m.bio = newBioRenderer(m.width, deps.Logger)
	return m
}

func newBioRenderer(width int, logger *zap.Logger) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(min(width, 80)),
	)
	if err != nil {
		logger.Warn("markdown renderer unavailable", zap.Error(err))
		return nil
	}
	return r
}

func (m Model) Init() tea.Cmd {
	return Navigate(m.startPath)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.bio = newBioRenderer(msg.Width, m.deps.Logger)
		return m, nil

	case timerFiredMsg:
		if msg.timer.claim() {
			msg.fn()
		}
		return m, nil

	case navigateMsg:
		m.navigate(msg.path)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) navigate(path string) {
	err := m.deps.Nav.Navigate(path)
	if err != nil && !errors.Is(err, domain.ErrRouteNotFound) {
		m.deps.Logger.Error("navigation failed", zap.Error(err))
	}
	m.notice = m.errorNotice(err, map[string]any{"Path": path})
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys()
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Log):
		m.navigate("/log")
	case key.Matches(msg, keys.Works):
		m.navigate("/works")
	case key.Matches(msg, keys.Lab):
		m.navigate("/lab")
	case key.Matches(msg, keys.Bio):
		m.navigate("/")
	case key.Matches(msg, keys.Next):
		m.navigate(m.neighbour(1))
	case key.Matches(msg, keys.Prev):
		m.navigate(m.neighbour(-1))
	case key.Matches(msg, keys.Language):
		locale := m.deps.Locale.Toggle(context.Background())
		m.deps.Logger.Info("locale changed", zap.String("locale", locale.String()))
	case m.onPage(entities.PageWorks) && key.Matches(msg, keys.Filter):
		n := len(m.deps.Works.Categories())
		if msg.String() == "left" || msg.String() == "[" {
			m.category = (m.category + n - 1) % n
		} else {
			m.category = (m.category + 1) % n
		}
	case m.onPage(entities.PageLab) && key.Matches(msg, keys.Env):
		m.deps.Lab.ToggleEnvironment()
	case m.onPage(entities.PageLab):
		if pad, ok := m.deps.Lab.PadForKey(msg.String()); ok {
			err := m.deps.Lab.TriggerPad(pad.ID)
			if err != nil {
				m.deps.Logger.Warn("pad trigger failed", zap.Error(err))
			}
			m.notice = m.errorNotice(err, map[string]any{"Pad": pad.ID})
		}
	}
	return m, nil
}

// onPage reports whether page is mounted and settled enough to take input.
func (m Model) onPage(page entities.PageID) bool {
	snap := m.deps.Nav.Snapshot()
	return snap.Mounted == page && snap.Phase != application.PhaseExiting
}

// neighbour returns the nav path dir steps away from the mounted page.
func (m Model) neighbour(dir int) string {
	current := m.deps.Nav.Snapshot().Mounted
	for i, item := range navItems {
		if item.page == current {
			return navItems[(i+dir+len(navItems))%len(navItems)].path
		}
	}
	return navItems[0].path
}

func (m Model) keys() keyMap {
	padKeys := make([]string, 0, len(m.deps.Site.Pads))
	for _, p := range m.deps.Site.Pads {
		if p.Key != "" {
			padKeys = append(padKeys, p.Key)
		}
	}
	return newKeyMap(m.deps.Locale.Resolve, padKeys)
}

func (m Model) View() string {
	snap := m.deps.Nav.Snapshot()
	body := m.renderPage(snap.Mounted, snap.Path)
	if snap.Phase.Transitioning() {
		body = fadingStyle.Render(body)
	}
	parts := []string{m.renderHeader(snap.Mounted), body}
	if m.notice != "" {
		parts = append(parts, errorStyle.Render(m.notice))
	}
	parts = append(parts, m.renderFooter(), m.help.View(m.keys()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
