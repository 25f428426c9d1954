package tui

import (
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kashbill/internal/application"
	"kashbill/internal/domain"
	"kashbill/internal/domain/entities"
	"kashbill/internal/infrastructure/clock"
	"kashbill/internal/infrastructure/content"
	"kashbill/internal/infrastructure/database"
	"kashbill/internal/infrastructure/i18n"
)

const settleTime = 600 * time.Millisecond

type harness struct {
	fake  *clock.Fake
	model Model
	deps  Deps
}

func newHarness(t *testing.T, routes ...entities.Route) *harness {
	t.Helper()
	locales := []entities.Locale{entities.LocaleEnglish, entities.LocaleSpanish}
	catalog, err := i18n.LoadEmbedded(locales)
	require.NoError(t, err)
	site, err := content.LoadEmbedded()
	require.NoError(t, err)

	locale, err := application.NewLocaleService(locales, catalog, i18n.NewTranslator(catalog, nil), database.NewMemoryPreferenceStore(), nil)
	require.NoError(t, err)

	if len(routes) == 0 {
		routes = application.DefaultRoutes()
	}
	table, err := entities.NewRouteTable(routes...)
	require.NoError(t, err)

	fake := clock.NewFake()
	deps := Deps{
		Locale: locale,
		Nav:    application.NewNavigationController(table, fake, application.DefaultDurations, nil),
		Lab:    application.NewLabService(site, application.NewMomentaryTrigger(fake, 0, nil), nil),
		Works:  application.NewWorksService(site),
		Site:   site,
		Now:    func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) },
	}
	return &harness{fake: fake, model: NewModel(deps, "/"), deps: deps}
}

func (h *harness) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := h.model.Update(msg)
	m, ok := next.(Model)
	require.True(t, ok)
	h.model = m
	return cmd
}

func (h *harness) press(t *testing.T, keys string) {
	t.Helper()
	h.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	cmd := h.model.Init()
	require.NotNil(t, cmd)
	h.send(t, cmd())
	h.fake.Advance(settleTime)
}

func TestModelStartsOnBio(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	snap := h.deps.Nav.Snapshot()
	assert.Equal(t, entities.PageBio, snap.Mounted)
	assert.Equal(t, application.PhaseIdle, snap.Phase)

	view := h.model.View()
	assert.Contains(t, view, "KASHBILL")
	assert.Contains(t, view, "OPERATOR PROFILE")
	assert.Contains(t, view, "© 2026 KASHBILL")
	assert.Contains(t, view, "ES", "toggle shows the other locale")
}

func TestModelNavigatesWithKeys(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.press(t, "2")
	assert.Equal(t, application.PhaseExiting, h.deps.Nav.Snapshot().Phase)
	assert.Equal(t, entities.PageBio, h.deps.Nav.Snapshot().Mounted)

	h.fake.Advance(settleTime)
	assert.Equal(t, entities.PageWorks, h.deps.Nav.Current())

	view := h.model.View()
	assert.Contains(t, view, "THE WORKS")
	assert.Contains(t, view, "4 projects")

	h.send(t, tea.KeyMsg{Type: tea.KeyTab})
	h.fake.Advance(settleTime)
	assert.Equal(t, entities.PageLab, h.deps.Nav.Current())

	h.send(t, tea.KeyMsg{Type: tea.KeyShiftTab})
	h.fake.Advance(settleTime)
	assert.Equal(t, entities.PageWorks, h.deps.Nav.Current())
}

func TestModelWorksFilter(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.press(t, "2")
	h.fake.Advance(settleTime)

	h.press(t, "]")
	assert.Contains(t, h.model.View(), "1 project")

	h.send(t, tea.KeyMsg{Type: tea.KeyLeft})
	h.send(t, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, len(h.deps.Works.Categories())-1, h.model.category, "filter wraps around")
}

func TestModelToggleLanguage(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.press(t, "l")
	assert.Equal(t, entities.LocaleSpanish, h.deps.Locale.ActiveLocale())

	view := h.model.View()
	assert.Contains(t, view, "REGISTRO")
	assert.Contains(t, view, "EN")
}

func TestModelLabPads(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.press(t, "3")
	h.fake.Advance(settleTime)
	require.Equal(t, entities.PageLab, h.deps.Nav.Current())

	assert.Contains(t, h.model.View(), "READY...")

	h.press(t, "a")
	assert.Equal(t, "PAD-01", h.deps.Lab.ActivePad())

	h.fake.Advance(application.DefaultTriggerDelay)
	assert.Empty(t, h.deps.Lab.ActivePad())

	h.press(t, "e")
	assert.False(t, h.deps.Lab.EnvironmentOn())
}

func TestModelIgnoresPadsOffTheLab(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.press(t, "a")
	assert.Empty(t, h.deps.Lab.ActivePad())
}

func TestModelUnknownRouteShowsNotice(t *testing.T) {
	h := newHarness(t,
		entities.Route{Pattern: "/", Page: entities.PageBio},
		entities.Route{Pattern: "/lab", Page: entities.PageLab},
	)
	h.start(t)

	h.send(t, Navigate("/nowhere")())
	assert.Equal(t, entities.PageBio, h.deps.Nav.Current())
	assert.Contains(t, h.model.View(), "Nothing is patched to /nowhere.")

	h.send(t, Navigate("/lab")())
	assert.Empty(t, h.model.notice)
}

func TestModelQuit(t *testing.T) {
	h := newHarness(t)
	cmd := h.send(t, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestProgramSchedulerDeliversThroughUpdate(t *testing.T) {
	h := newHarness(t)

	msgs := make(chan tea.Msg, 2)
	s := NewProgramScheduler()
	s.send = func(msg tea.Msg) { msgs <- msg }

	ran := 0
	s.AfterFunc(0, func() { ran++ })
	h.send(t, <-msgs)
	assert.Equal(t, 1, ran)

	timer := s.AfterFunc(0, func() { ran++ })
	msg := <-msgs
	assert.True(t, timer.Stop(), "stopping a queued timer still counts")
	h.send(t, msg)
	assert.Equal(t, 1, ran)
	assert.False(t, timer.Stop())
}

func TestErrorKey(t *testing.T) {
	tests := map[error]string{
		fmt.Errorf("navigate: %w", domain.ErrRouteNotFound): "notFound.body",
		fmt.Errorf("trigger: %w", domain.ErrPadNotFound):    "errors.pad",
		domain.ErrUnknownCategory:                            "errors.category",
		domain.ErrUnsupportedLocale:                          "errors.locale",
		errors.New("boom"):                                   "errors.generic",
	}
	for err, want := range tests {
		assert.Equal(t, want, errorKey(err), err.Error())
	}

	h := newHarness(t)
	assert.Empty(t, h.model.errorNotice(nil, nil))
	assert.Equal(t, "PAD PAD-09 OFFLINE", h.model.errorNotice(domain.ErrPadNotFound, map[string]any{"Pad": "PAD-09"}))
	assert.Equal(t, "SYSTEM FAULT", h.model.errorNotice(errors.New("boom"), nil))
}
