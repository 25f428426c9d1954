package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"kashbill/internal/application"
	"kashbill/internal/config"
	"kashbill/internal/domain/entities"
	"kashbill/internal/infrastructure/content"
	"kashbill/internal/infrastructure/database"
	"kashbill/internal/infrastructure/i18n"
	"kashbill/internal/ports/output"
)

// app is everything the commands share: content, translations, the locale
// resolver and the route table.
type app struct {
	site   *entities.Site
	locale *application.LocaleService
	routes *entities.RouteTable
	close  func()
}

func bootstrap(ctx context.Context) (*app, error) {
	locales := cfg.SupportedLocales()

	catalog, err := loadCatalog(locales)
	if err != nil {
		return nil, err
	}

	site, err := content.LoadFile(cfg.ContentFile)
	if err != nil {
		return nil, err
	}

	routes, err := application.DefaultRouteTable()
	if err != nil {
		return nil, err
	}

	store, closeStore := openStore(ctx)

	locale, err := application.NewLocaleService(locales, catalog, i18n.NewTranslator(catalog, logger), store, logger)
	if err != nil {
		closeStore()
		return nil, err
	}

	hint := langHint
	if hint == "" {
		hint = i18n.PlatformHint()
	}
	active := locale.Init(ctx, hint)
	logger.Debug("locale initialised", zap.String("locale", active.String()), zap.String("hint", hint))

	return &app{
		site:   site,
		locale: locale,
		routes: routes,
		close: func() {
			locale.Wait()
			closeStore()
		},
	}, nil
}

func loadCatalog(locales []entities.Locale) (*i18n.Catalog, error) {
	if cfg.TranslationsDir != "" {
		logger.Info("loading translations", zap.String("dir", cfg.TranslationsDir))
		return i18n.LoadCatalog(os.DirFS(cfg.TranslationsDir), locales)
	}
	return i18n.LoadEmbedded(locales)
}

// openStore opens the configured preference backend. A backend that cannot be
// opened degrades to an in-memory store: the preference is then simply not
// remembered across sessions.
func openStore(ctx context.Context) (output.PreferenceStore, func()) {
	store, closeFn, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Warn("preference store unavailable, using memory",
			zap.String("backend", cfg.PreferenceBackend), zap.Error(err))
		return database.NewMemoryPreferenceStore(), func() {}
	}
	return store, closeFn
}

func openBackend(ctx context.Context, cfg *config.Config) (output.PreferenceStore, func(), error) {
	switch cfg.PreferenceBackend {
	case config.BackendMemory:
		return database.NewMemoryPreferenceStore(), func() {}, nil

	case config.BackendSQLite:
		store, err := database.OpenSQLite(cfg.PreferencePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("sqlite preference store opened", zap.String("path", cfg.PreferencePath))
		return store, func() { _ = store.Close() }, nil

	case config.BackendPostgres:
		if err := database.RunMigrations(cfg.DatabaseURL, database.DialectPostgres, logger); err != nil {
			return nil, nil, err
		}
		pool, err := database.NewPool(ctx, database.PoolConfig{
			DSN:         cfg.DatabaseURL,
			MaxConns:    cfg.DatabaseMaxConns,
			PingTimeout: cfg.DatabasePingTimeout,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		return database.NewPreferenceRepository(pool), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown preference backend %q", cfg.PreferenceBackend)
}

func durations() application.Durations {
	return application.Durations{Exit: cfg.ExitDuration, Enter: cfg.EnterDuration}
}
