package app

import (
	"context"
	"fmt"
	"log"

	"funnel/internal/config"
	"funnel/internal/crm"
	"funnel/internal/prefs"
	"funnel/internal/state"
	"funnel/internal/ui"
)

// Options configure the funnel application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses the config value, then the prefs default
}

// Run boots the funnel TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = cfg.PrefsPath
	}

	// A broken preference store is never fatal; funnel runs with defaults.
	store, err := prefs.Open(prefsPath)
	if err != nil {
		log.Printf("open prefs store failed: %v", err)
		store = nil
	}
	defer func() { _ = store.Close() }()

	client, err := crm.NewClient(cfg.APIBind)
	if err != nil {
		return fmt.Errorf("init lead client: %w", err)
	}

	uiOpts := ui.Options{
		Context: ctx,
		Source:  client,
		Store:   state.NewStore(),
		Prefs:   store,
		Initial: store.Load(),
	}
	return ui.Run(uiOpts)
}
