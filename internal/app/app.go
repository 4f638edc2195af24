package app

import (
	"context"
	"fmt"
	"time"

	"github.com/mallworks/mallboard/internal/action"
	"github.com/mallworks/mallboard/internal/config"
	"github.com/mallworks/mallboard/internal/mall"
	"github.com/mallworks/mallboard/internal/prefs"
	"github.com/mallworks/mallboard/internal/session"
	"github.com/mallworks/mallboard/internal/state"
	"github.com/mallworks/mallboard/internal/ui"
	"github.com/mallworks/mallboard/pkg/logger"
)

// Options configure the mallboard application.
type Options struct {
	ConfigPath   string
	APIBase      string // overrides the config file when set
	PrefsPath    string // empty uses default ~/.config/mallboard/prefs.toml
	SessionPath  string // empty uses default ~/.config/mallboard/session.json
	RefreshEvery int    // seconds; zero uses the config file value
}

// Run boots the mallboard TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIBase != "" {
		cfg.APIBase = opts.APIBase
	}
	if opts.RefreshEvery > 0 {
		cfg.RefreshEvery = opts.RefreshEvery
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Path: cfg.LogPath()})
	log.Info().Str("api_base", cfg.APIBase).Msg("starting mallboard")

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := mall.NewClient(cfg.APIBase)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	stores := state.NewStores(client)
	coord := action.NewCoordinator(client, stores, opts.SessionPath)

	if cfg.RefreshEvery > 0 {
		StartRefresher(ctx, stores, time.Duration(cfg.RefreshEvery)*time.Second)
	}

	sessionPath := opts.SessionPath
	if sessionPath == "" {
		sessionPath = session.DefaultPath()
	}
	_, loggedIn := session.Load(sessionPath)

	uiOpts := ui.Options{
		Context:     ctx,
		Stores:      stores,
		Coordinator: coord,
		ThemeName:   userPrefs.Theme,
		PrefsPath:   opts.PrefsPath,
		LoggedIn:    loggedIn,
	}
	return ui.Run(uiOpts)
}
