package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kashbill/internal/application"
	"kashbill/internal/config"
	"kashbill/internal/domain/entities"
)

func TestParseAssignments(t *testing.T) {
	data, err := parseAssignments([]string{"Count=3", "Path=/lab", "Empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Count": 3, "Path": "/lab", "Empty": ""}, data)

	_, err = parseAssignments([]string{"nope"})
	require.Error(t, err)
	_, err = parseAssignments([]string{"=3"})
	require.Error(t, err)
}

func TestReplay(t *testing.T) {
	cfg = &config.Config{ExitDuration: 20 * time.Millisecond, EnterDuration: 20 * time.Millisecond}
	logger = zap.NewNop()

	table, err := application.DefaultRouteTable()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	require.NoError(t, replay(ctx, &out, table, []string{"/log", "/lab"}, 80*time.Millisecond))
	require.NoError(t, ctx.Err(), "replay returned on its own")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.NotEmpty(t, lines)
	last := strings.Fields(lines[len(lines)-1])
	assert.Equal(t, []string{string(application.EventEnterCompleted), "lab", "/lab"}, last[1:])
	assert.Contains(t, out.String(), string(application.EventExitCompleted))
}

func TestReplayStopsAfterNoOp(t *testing.T) {
	cfg = &config.Config{ExitDuration: 10 * time.Millisecond, EnterDuration: 10 * time.Millisecond}
	logger = zap.NewNop()

	table, err := application.DefaultRouteTable()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	require.NoError(t, replay(ctx, &out, table, []string{"/lab", "/lab"}, 50*time.Millisecond))
	require.NoError(t, ctx.Err())
	assert.Contains(t, out.String(), string(application.EventNoOp))
}

func TestBootstrapKeepsLocaleAcrossRestart(t *testing.T) {
	cfg = &config.Config{
		Locales:           []string{"en", "es"},
		PreferenceBackend: config.BackendSQLite,
		PreferencePath:    filepath.Join(t.TempDir(), "preferences.db"),
	}
	logger = zap.NewNop()
	langHint = "en-US"
	t.Cleanup(func() { langHint = "" })

	ctx := context.Background()
	a, err := bootstrap(ctx)
	require.NoError(t, err)
	require.Equal(t, entities.LocaleEnglish, a.locale.ActiveLocale())
	require.NoError(t, a.locale.SetLocale(ctx, entities.LocaleSpanish))
	// close drains the pending write before the store goes away.
	a.close()

	b, err := bootstrap(ctx)
	require.NoError(t, err)
	defer b.close()
	assert.Equal(t, entities.LocaleSpanish, b.locale.ActiveLocale())
	assert.Equal(t, "REGISTRO", b.locale.Resolve("nav.log"))
}
