package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"kashbill/internal/application"
	"kashbill/internal/config"
	"kashbill/internal/domain/entities"
	"kashbill/internal/infrastructure/clock"
	"kashbill/internal/infrastructure/database"
)

var (
	resolveLang string
	resolveSet  []string

	langToggle bool

	routesMatch string

	navigateInterval time.Duration
)

// resolveCmd prints translations for one or more keys.
var resolveCmd = &cobra.Command{
	Use:   "resolve KEY...",
	Short: "Resolve translation keys in the active (or given) language",
	Long: `Resolve prints the string stored at each dotted key path.

Missing keys print unchanged. With --set the key is rendered as a template
(placeholders and plural forms) in the active language.`,
	Example: `  kashbill resolve nav.log nav.works
  kashbill resolve --lang es lab.ready
  kashbill resolve works.count --set Count=3`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if resolveLang != "" && len(resolveSet) > 0 {
			return fmt.Errorf("--lang and --set cannot be combined")
		}
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		out := cmd.OutOrStdout()
		switch {
		case len(resolveSet) > 0:
			data, err := parseAssignments(resolveSet)
			if err != nil {
				return err
			}
			for _, key := range args {
				fmt.Fprintln(out, a.locale.Render(key, data))
			}
		case resolveLang != "":
			locale := entities.Locale(resolveLang)
			if !a.locale.IsSupported(locale) {
				return fmt.Errorf("language %q is not one of %v", resolveLang, a.locale.Supported())
			}
			for _, key := range args {
				fmt.Fprintln(out, a.locale.ResolveFor(locale, key))
			}
		default:
			for _, key := range args {
				fmt.Fprintln(out, a.locale.Resolve(key))
			}
		}
		return nil
	},
}

// parseAssignments turns ["Count=3", "Name=x"] into template data. Integer
// values stay integers so plural selection works.
func parseAssignments(pairs []string) (map[string]any, error) {
	data := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q, want KEY=VALUE", pair)
		}
		if n, err := strconv.Atoi(v); err == nil {
			data[k] = n
		} else {
			data[k] = v
		}
	}
	return data, nil
}

// langCmd shows or changes the remembered language.
var langCmd = &cobra.Command{
	Use:   "lang [LOCALE]",
	Short: "Show or set the interface language",
	Example: `  kashbill lang
  kashbill lang es
  kashbill lang --toggle`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		switch {
		case langToggle:
			a.locale.Toggle(ctx)
		case len(args) == 1:
			if err := a.locale.SetLocale(ctx, entities.Locale(args[0])); err != nil {
				return err
			}
		}
		printLocales(cmd.OutOrStdout(), a.locale)
		return nil
	},
}

func printLocales(w io.Writer, locale *application.LocaleService) {
	active := locale.ActiveLocale()
	for _, l := range locale.Supported() {
		marker := " "
		if l == active {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\n", marker, l.Label())
	}
}

// routesCmd lists the route table.
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List routes, or show which page a path resolves to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := application.DefaultRouteTable()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if routesMatch != "" {
			page, ok := table.Match(routesMatch)
			if !ok {
				return fmt.Errorf("no route for %q", routesMatch)
			}
			fmt.Fprintf(out, "%s -> %s\n", entities.NormalizePath(routesMatch), page)
			return nil
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PATTERN\tPAGE")
		for _, r := range table.Routes() {
			fmt.Fprintf(tw, "%s\t%s\n", r.Pattern, r.Page)
		}
		return tw.Flush()
	},
}

// navigateCmd replays a navigation sequence headless on real timers and
// prints every transition event.
var navigateCmd = &cobra.Command{
	Use:   "navigate PATH...",
	Short: "Replay a navigation sequence and print transition events",
	Long: `Navigate feeds the given paths to the view transition controller, one
every --interval, and prints each event as it happens. It returns once the
last navigation has settled.

An interval shorter than the exit duration shows supersession: only the
latest target is mounted.`,
	Example: `  kashbill navigate /log /works /lab --interval 100ms`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := application.DefaultRouteTable()
		if err != nil {
			return err
		}
		return replay(cmd.Context(), cmd.OutOrStdout(), table, args, navigateInterval)
	},
}

func replay(ctx context.Context, out io.Writer, table *entities.RouteTable, paths []string, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := clock.NewLoop()
	nav := application.NewNavigationController(table, loop, durations(), logger)

	start := time.Now()
	sent := 0
	settled := func() {
		if sent == len(paths) && nav.Snapshot().Phase == application.PhaseIdle {
			cancel()
		}
	}
	nav.OnEvent(func(e application.Event) {
		fmt.Fprintf(out, "%6dms  %-16s %-10s %s\n", time.Since(start).Milliseconds(), e.Kind, e.Page, e.Path)
		if e.Kind == application.EventEnterCompleted {
			settled()
		}
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := loop.Run(gctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		for i, p := range paths {
			if i > 0 {
				select {
				case <-gctx.Done():
					return nil
				case <-time.After(interval):
				}
			}
			loop.Post(func() {
				sent++
				if err := nav.Navigate(p); err != nil {
					logger.Warn("navigation rejected", zap.String("path", p), zap.Error(err))
				}
				settled()
			})
		}
		return nil
	})
	return g.Wait()
}

// migrateCmd applies the preference schema to the configured backend.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply preference store migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch cfg.PreferenceBackend {
		case config.BackendSQLite:
			store, err := database.OpenSQLite(cfg.PreferencePath)
			if err != nil {
				return err
			}
			logger.Info("sqlite preference store ready", zap.String("path", cfg.PreferencePath))
			return store.Close()
		case config.BackendPostgres:
			return database.RunMigrations(cfg.DatabaseURL, database.DialectPostgres, logger)
		default:
			logger.Info("nothing to migrate", zap.String("backend", cfg.PreferenceBackend))
			return nil
		}
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveLang, "lang", "", "resolve in this language instead of the active one")
	resolveCmd.Flags().StringArrayVar(&resolveSet, "set", nil, "template data KEY=VALUE (repeatable)")

	langCmd.Flags().BoolVar(&langToggle, "toggle", false, "switch to the next language")

	routesCmd.Flags().StringVar(&routesMatch, "match", "", "print the page a path resolves to")

	navigateCmd.Flags().DurationVar(&navigateInterval, "interval", 100*time.Millisecond, "delay between navigations")
}
