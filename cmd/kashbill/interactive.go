package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kashbill/internal/adapters/tui"
	"kashbill/internal/application"
)

func runInteractive(ctx context.Context) error {
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	scheduler := tui.NewProgramScheduler()
	nav := application.NewNavigationController(a.routes, scheduler, durations(), logger)
	trigger := application.NewMomentaryTrigger(scheduler, cfg.TriggerDelay, nil)

	path := cfg.StartPath
	if startPath != "" {
		path = startPath
	}

	model := tui.NewModel(tui.Deps{
		Locale: a.locale,
		Nav:    nav,
		Lab:    application.NewLabService(a.site, trigger, logger),
		Works:  application.NewWorksService(a.site),
		Site:   a.site,
		Logger: logger,
		Now:    time.Now,
	}, path)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	scheduler.Attach(p)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
