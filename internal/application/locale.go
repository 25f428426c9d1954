package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"kashbill/internal/domain"
	"kashbill/internal/domain/entities"
	"kashbill/internal/ports/input"
	"kashbill/internal/ports/output"
)

var _ input.LocaleUseCase = (*LocaleService)(nil)

const persistTimeout = 2 * time.Second

// localeState is published as a whole so readers never pair a locale with
// another locale's table.
type localeState struct {
	locale entities.Locale
	table  *entities.TranslationTable
}

// LocaleService owns the active locale and resolves translation keys.
type LocaleService struct {
	supported  []entities.Locale
	source     output.TranslationSource
	translator output.T
	store      output.PreferenceStore
	logger     *zap.Logger

	active atomic.Pointer[localeState]
	misses atomic.Int64

	// saves run off the caller's goroutine; saveMu orders them and only the
	// newest generation is written.
	saves   sync.WaitGroup
	saveMu  sync.Mutex
	saveGen atomic.Uint64
}

// NewLocaleService builds a resolver over supported locales; the first one is
// the default and is active until Init or SetLocale says otherwise.
// translator may be nil, in which case Render degrades to Resolve.
func NewLocaleService(
	supported []entities.Locale,
	source output.TranslationSource,
	translator output.T,
	store output.PreferenceStore,
	logger *zap.Logger,
) (*LocaleService, error) {
	if len(supported) == 0 {
		return nil, fmt.Errorf("locale service: %w: empty supported set", domain.ErrUnsupportedLocale)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &LocaleService{
		supported:  append([]entities.Locale(nil), supported...),
		source:     source,
		translator: translator,
		store:      store,
		logger:     logger,
	}
	s.activate(supported[0])
	return s, nil
}

// Init restores the persisted preference, else matches hint, else keeps the
// default locale.
func (s *LocaleService) Init(ctx context.Context, hint string) entities.Locale {
	if locale, ok := s.persisted(ctx); ok {
		s.activate(locale)
		s.logger.Debug("locale restored from preference", zap.String("locale", locale.String()))
		return locale
	}
	if locale, ok := s.matchHint(hint); ok {
		s.activate(locale)
		s.logger.Debug("locale matched platform hint", zap.String("locale", locale.String()), zap.String("hint", hint))
		return locale
	}
	s.activate(s.supported[0])
	return s.supported[0]
}

func (s *LocaleService) persisted(ctx context.Context) (entities.Locale, bool) {
	if s.store == nil {
		return "", false
	}
	value, err := s.store.Load(ctx, domain.PreferenceLocaleKey)
	if err != nil {
		if !errors.Is(err, domain.ErrPreferenceNotFound) {
			s.logger.Warn("locale preference unreadable", zap.Error(err))
		}
		return "", false
	}
	locale := entities.Locale(strings.TrimSpace(value))
	if !s.IsSupported(locale) {
		s.logger.Warn("ignoring unsupported persisted locale", zap.String("value", value))
		return "", false
	}
	return locale, true
}

// matchHint walks the hint's tags in preference order and returns the first
// supported locale sharing the tag's primary subtag.
func (s *LocaleService) matchHint(hint string) (entities.Locale, bool) {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(hint)
	if err != nil {
		s.logger.Debug("platform hint not parseable", zap.String("hint", hint), zap.Error(err))
		return "", false
	}
	for _, tag := range tags {
		base, _ := tag.Base()
		for _, locale := range s.supported {
			if strings.EqualFold(base.String(), primarySubtag(locale)) {
				return locale, true
			}
		}
	}
	return "", false
}

func primarySubtag(l entities.Locale) string {
	v := string(l)
	if i := strings.IndexAny(v, "-_"); i >= 0 {
		v = v[:i]
	}
	return v
}

// ActiveLocale returns the current locale.
func (s *LocaleService) ActiveLocale() entities.Locale {
	return s.active.Load().locale
}

// Supported returns a copy of the supported locales, default first.
func (s *LocaleService) Supported() []entities.Locale {
	return append([]entities.Locale(nil), s.supported...)
}

// IsSupported reports whether locale belongs to the supported set.
func (s *LocaleService) IsSupported(locale entities.Locale) bool {
	for _, l := range s.supported {
		if l == locale {
			return true
		}
	}
	return false
}

// SetLocale activates locale and persists it in the background. An
// unsupported locale returns domain.ErrUnsupportedLocale and changes nothing.
func (s *LocaleService) SetLocale(ctx context.Context, locale entities.Locale) error {
	if !s.IsSupported(locale) {
		return fmt.Errorf("set locale %q: %w", locale, domain.ErrUnsupportedLocale)
	}
	s.activate(locale)
	s.persist(ctx, locale)
	return nil
}

// Toggle switches to the next supported locale, wrapping around.
func (s *LocaleService) Toggle(ctx context.Context) entities.Locale {
	current := s.ActiveLocale()
	next := s.supported[0]
	for i, l := range s.supported {
		if l == current {
			next = s.supported[(i+1)%len(s.supported)]
			break
		}
	}
	// next is always supported.
	_ = s.SetLocale(ctx, next)
	return next
}

// Next returns the locale Toggle would switch to, without switching.
func (s *LocaleService) Next() entities.Locale {
	current := s.ActiveLocale()
	for i, l := range s.supported {
		if l == current {
			return s.supported[(i+1)%len(s.supported)]
		}
	}
	return s.supported[0]
}

func (s *LocaleService) activate(locale entities.Locale) {
	st := &localeState{locale: locale}
	if s.source != nil {
		if table, ok := s.source.Table(locale); ok {
			st.table = table
		}
	}
	s.active.Store(st)
}

func (s *LocaleService) persist(ctx context.Context, locale entities.Locale) {
	if s.store == nil {
		return
	}
	gen := s.saveGen.Add(1)
	ctx = context.WithoutCancel(ctx)
	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		s.saveMu.Lock()
		defer s.saveMu.Unlock()
		if s.saveGen.Load() != gen {
			return
		}
		ctx, cancel := context.WithTimeout(ctx, persistTimeout)
		defer cancel()
		if err := s.store.Save(ctx, domain.PreferenceLocaleKey, locale.String()); err != nil {
			s.logger.Warn("locale preference not persisted", zap.String("locale", locale.String()), zap.Error(err))
		}
	}()
}

// Wait blocks until pending preference writes have finished. Call it before
// closing the store.
func (s *LocaleService) Wait() {
	s.saves.Wait()
}

// Resolve returns the active locale's string at keyPath, or keyPath itself
// when there is none.
func (s *LocaleService) Resolve(keyPath string) string {
	st := s.active.Load()
	return s.resolveIn(st.locale, st.table, keyPath)
}

// ResolveFor is Resolve against an explicit locale's table.
func (s *LocaleService) ResolveFor(locale entities.Locale, keyPath string) string {
	if !s.IsSupported(locale) || s.source == nil {
		return s.miss(locale, keyPath)
	}
	table, _ := s.source.Table(locale)
	return s.resolveIn(locale, table, keyPath)
}

func (s *LocaleService) resolveIn(locale entities.Locale, table *entities.TranslationTable, keyPath string) string {
	if v, ok := table.Lookup(keyPath); ok {
		return v
	}
	return s.miss(locale, keyPath)
}

// Render expands a templated message (placeholders, plural forms) from the
// active locale. Keys absent from the active table come back unchanged.
func (s *LocaleService) Render(keyPath string, data map[string]any) string {
	st := s.active.Load()
	if _, ok := st.table.Find(keyPath); !ok {
		return s.miss(st.locale, keyPath)
	}
	if s.translator == nil {
		return s.resolveIn(st.locale, st.table, keyPath)
	}
	return s.translator.T(st.locale.String(), keyPath, data)
}

func (s *LocaleService) miss(locale entities.Locale, keyPath string) string {
	s.misses.Add(1)
	s.logger.Debug("translation missing", zap.String("locale", locale.String()), zap.String("key", keyPath))
	return keyPath
}

// Misses counts fallbacks to the raw key since startup.
func (s *LocaleService) Misses() int64 {
	return s.misses.Load()
}
