package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kashbill/internal/domain"
	"kashbill/internal/domain/entities"
)

// tableSource serves fixed tables.
type tableSource map[entities.Locale]*entities.TranslationTable

func (s tableSource) Table(locale entities.Locale) (*entities.TranslationTable, bool) {
	t, ok := s[locale]
	return t, ok
}

// memoryStore is a PreferenceStore with an injectable failure.
type memoryStore struct {
	mu     sync.Mutex
	values map[string]string
	err    error
	saves  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (m *memoryStore) Load(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	v, ok := m.values[key]
	if !ok {
		return "", domain.ErrPreferenceNotFound
	}
	return v, nil
}

func (m *memoryStore) Save(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

// slowStore holds every Save until release is closed.
type slowStore struct {
	release chan struct{}
	saved   chan string
	ctxErr  error
}

func (s *slowStore) Load(context.Context, string) (string, error) {
	return "", domain.ErrPreferenceNotFound
}

func (s *slowStore) Save(ctx context.Context, _ string, value string) error {
	<-s.release
	s.ctxErr = ctx.Err()
	s.saved <- value
	return nil
}

// echoTranslator renders "<locale>:<key>" plus sorted data, so tests can see
// which locale and arguments reached it.
type echoTranslator struct{}

func (echoTranslator) T(locale, key string, data map[string]any) string {
	parts := []string{locale + ":" + key}
	for k, v := range data {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(parts[1:])
	return strings.Join(parts, " ")
}

func mustTable(t *testing.T, doc map[string]any) *entities.TranslationTable {
	t.Helper()
	table, err := entities.BuildTranslationTable(doc)
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return table
}

type LocaleServiceSuite struct {
	suite.Suite
	ctx    context.Context
	source tableSource
	store  *memoryStore
	svc    *LocaleService
}

func TestLocaleServiceSuite(t *testing.T) {
	suite.Run(t, new(LocaleServiceSuite))
}

func (s *LocaleServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.source = tableSource{
		entities.LocaleEnglish: mustTable(s.T(), map[string]any{
			"nav":   map[string]any{"log": "WORK_LOG", "works": "THE_WORKS"},
			"works": map[string]any{"count": map[string]any{"one": "{{.Count}} project", "other": "{{.Count}} projects"}},
			"only":  map[string]any{"en": "english only"},
		}),
		entities.LocaleSpanish: mustTable(s.T(), map[string]any{
			"nav":   map[string]any{"log": "REGISTRO", "works": "LAS_OBRAS"},
			"works": map[string]any{"count": map[string]any{"one": "{{.Count}} proyecto", "other": "{{.Count}} proyectos"}},
		}),
	}
	s.store = newMemoryStore()
	s.svc = s.newService()
}

func (s *LocaleServiceSuite) newService() *LocaleService {
	svc, err := NewLocaleService(
		[]entities.Locale{entities.LocaleEnglish, entities.LocaleSpanish},
		s.source, echoTranslator{}, s.store, nil,
	)
	s.Require().NoError(err)
	return svc
}

func (s *LocaleServiceSuite) TestRejectsEmptySupportedSet() {
	_, err := NewLocaleService(nil, s.source, nil, s.store, nil)
	s.Require().ErrorIs(err, domain.ErrUnsupportedLocale)
}

func (s *LocaleServiceSuite) TestDefaultIsFirstSupported() {
	s.Equal(entities.LocaleEnglish, s.svc.ActiveLocale())
	s.Equal(entities.LocaleEnglish, s.svc.Init(s.ctx, ""))
}

func (s *LocaleServiceSuite) TestResolve() {
	s.Run("returns the active locale's string", func() {
		s.Equal("WORK_LOG", s.svc.Resolve("nav.log"))
	})

	s.Run("returns the key for a missing leaf", func() {
		s.Equal("nav.missing", s.svc.Resolve("nav.missing"))
	})

	s.Run("returns the key for an interior node", func() {
		s.Equal("nav", s.svc.Resolve("nav"))
	})

	s.Run("fallback is idempotent", func() {
		once := s.svc.Resolve("nav.missing")
		s.Equal(once, s.svc.Resolve(once))
	})

	s.Run("does not fall back to another locale", func() {
		s.Require().NoError(s.svc.SetLocale(s.ctx, entities.LocaleSpanish))
		s.Equal("only.en", s.svc.Resolve("only.en"))
	})

	s.Run("counts misses", func() {
		s.Positive(s.svc.Misses())
	})
}

func (s *LocaleServiceSuite) TestResolveEveryStoredKey() {
	for _, locale := range s.svc.Supported() {
		s.Require().NoError(s.svc.SetLocale(s.ctx, locale))
		table, _ := s.source.Table(locale)
		for _, key := range table.Keys() {
			want, _ := table.Lookup(key)
			s.Equal(want, s.svc.Resolve(key), "%s %s", locale, key)
		}
	}
}

func (s *LocaleServiceSuite) TestResolveFor() {
	s.Equal("REGISTRO", s.svc.ResolveFor(entities.LocaleSpanish, "nav.log"))
	s.Equal("nav.log", s.svc.ResolveFor("fr", "nav.log"))
	s.Equal(entities.LocaleEnglish, s.svc.ActiveLocale(), "ResolveFor never switches")
}

func (s *LocaleServiceSuite) TestSetLocale() {
	s.Run("switches and persists", func() {
		s.Require().NoError(s.svc.SetLocale(s.ctx, entities.LocaleSpanish))
		s.Equal(entities.LocaleSpanish, s.svc.ActiveLocale())
		s.Equal("REGISTRO", s.svc.Resolve("nav.log"))
		s.svc.Wait()
		s.Equal("es", s.store.values[domain.PreferenceLocaleKey])
	})

	s.Run("unsupported locale changes nothing", func() {
		saves := s.store.saves
		err := s.svc.SetLocale(s.ctx, "fr")
		s.Require().ErrorIs(err, domain.ErrUnsupportedLocale)
		s.svc.Wait()
		s.Equal(entities.LocaleSpanish, s.svc.ActiveLocale())
		s.Equal(saves, s.store.saves, "nothing persisted")
		s.Equal("es", s.store.values[domain.PreferenceLocaleKey])
	})
}

func (s *LocaleServiceSuite) TestSetLocaleSurvivesStoreFailure() {
	s.store.err = errors.New("disk full")

	s.Require().NoError(s.svc.SetLocale(s.ctx, entities.LocaleSpanish))
	s.Equal(entities.LocaleSpanish, s.svc.ActiveLocale())
	s.Equal("LAS_OBRAS", s.svc.Resolve("nav.works"))
	s.svc.Wait()
	s.Equal(1, s.store.saves)
}

func (s *LocaleServiceSuite) TestSetLocaleDoesNotWaitForTheStore() {
	store := &slowStore{release: make(chan struct{}), saved: make(chan string, 4)}
	svc, err := NewLocaleService(
		[]entities.Locale{entities.LocaleEnglish, entities.LocaleSpanish},
		s.source, nil, store, nil,
	)
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan error, 1)
	go func() { done <- svc.SetLocale(ctx, entities.LocaleSpanish) }()

	select {
	case err := <-done:
		s.Require().NoError(err)
	case <-time.After(time.Second):
		s.FailNow("SetLocale blocked on the store")
	}
	s.Equal(entities.LocaleSpanish, svc.ActiveLocale())
	s.Equal("REGISTRO", svc.Resolve("nav.log"))

	// The write outlives the caller's context.
	cancel()
	close(store.release)
	svc.Wait()
	s.Equal("es", <-store.saved)
	s.NoError(store.ctxErr)
}

func (s *LocaleServiceSuite) TestQueuedSavesKeepTheLatestLocale() {
	store := &slowStore{release: make(chan struct{}), saved: make(chan string, 8)}
	svc, err := NewLocaleService(
		[]entities.Locale{entities.LocaleEnglish, entities.LocaleSpanish},
		s.source, nil, store, nil,
	)
	s.Require().NoError(err)

	for range 5 {
		svc.Toggle(s.ctx)
	}
	close(store.release)
	svc.Wait()
	close(store.saved)

	var last string
	for v := range store.saved {
		last = v
	}
	s.Equal("es", last)
	s.Equal(entities.LocaleSpanish, svc.ActiveLocale())
}

func (s *LocaleServiceSuite) TestToggle() {
	s.Equal(entities.LocaleSpanish, s.svc.Next())
	s.Equal(entities.LocaleSpanish, s.svc.Toggle(s.ctx))
	s.Equal(entities.LocaleEnglish, s.svc.Next())
	s.Equal(entities.LocaleEnglish, s.svc.Toggle(s.ctx))
	s.svc.Wait()
	s.Equal("en", s.store.values[domain.PreferenceLocaleKey])
}

func (s *LocaleServiceSuite) TestInitPriority() {
	s.Run("persisted preference wins over the hint", func() {
		s.Require().NoError(s.svc.SetLocale(s.ctx, entities.LocaleSpanish))
		s.svc.Wait()

		restarted := s.newService()
		s.Equal(entities.LocaleSpanish, restarted.Init(s.ctx, "en-US"))
		s.Equal("REGISTRO", restarted.Resolve("nav.log"))
	})

	s.Run("restores without any hint", func() {
		restarted := s.newService()
		s.Equal(entities.LocaleSpanish, restarted.Init(s.ctx, ""))
	})

	s.Run("unsupported persisted value falls through to the hint", func() {
		s.store.values[domain.PreferenceLocaleKey] = "fr"
		restarted := s.newService()
		s.Equal(entities.LocaleSpanish, restarted.Init(s.ctx, "es-MX"))
	})

	s.Run("unreadable store falls through to the default", func() {
		s.store.err = errors.New("locked")
		defer func() { s.store.err = nil }()
		restarted := s.newService()
		s.Equal(entities.LocaleEnglish, restarted.Init(s.ctx, "de-DE"))
	})
}

func (s *LocaleServiceSuite) TestInitHintMatching() {
	tests := []struct {
		hint string
		want entities.Locale
	}{
		{hint: "es", want: entities.LocaleSpanish},
		{hint: "es-AR", want: entities.LocaleSpanish},
		{hint: "fr-FR,es;q=0.8,en;q=0.5", want: entities.LocaleSpanish},
		{hint: "en-GB,es;q=0.9", want: entities.LocaleEnglish},
		{hint: "de-DE", want: entities.LocaleEnglish},
		{hint: "not a tag;;", want: entities.LocaleEnglish},
	}
	for _, tt := range tests {
		s.Run(tt.hint, func() {
			s.store.values = map[string]string{}
			s.Equal(tt.want, s.newService().Init(s.ctx, tt.hint))
		})
	}
}

func (s *LocaleServiceSuite) TestRender() {
	s.Run("passes the active locale and data to the translator", func() {
		s.Equal("en:works.count Count=3", s.svc.Render("works.count", map[string]any{"Count": 3}))
	})

	s.Run("missing key comes back unchanged", func() {
		s.Equal("works.missing", s.svc.Render("works.missing", nil))
	})

	s.Run("guards against the other locale", func() {
		s.Require().NoError(s.svc.SetLocale(s.ctx, entities.LocaleSpanish))
		s.Equal("only.en", s.svc.Render("only.en", nil))
	})

	s.Run("without a translator degrades to resolve", func() {
		svc, err := NewLocaleService([]entities.Locale{entities.LocaleEnglish}, s.source, nil, nil, nil)
		s.Require().NoError(err)
		s.Equal("WORK_LOG", svc.Render("nav.log", nil))
		s.Equal("works.count", svc.Render("works.count", map[string]any{"Count": 1}))
	})
}
