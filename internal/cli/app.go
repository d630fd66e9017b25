package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Makepad-fr/impact/internal/config"
	"github.com/Makepad-fr/impact/internal/list"
	"github.com/Makepad-fr/impact/internal/store"
	"github.com/Makepad-fr/impact/internal/store/jsonstore"
	"github.com/Makepad-fr/impact/internal/store/memory"
	"github.com/Makepad-fr/impact/internal/store/sqlite"
	"github.com/Makepad-fr/impact/internal/ui"
)

// muted sits above every slog level.
const muted = slog.Level(100)

// App holds what the commands share. Store is opened lazily from the
// config unless a caller sets it up front.
type App struct {
	Store *list.Store

	// IsInteractive reports whether stdin/stdout are a terminal.
	IsInteractive func() bool
	// RunTUI starts the full-screen list.
	RunTUI func(*list.Store) error
	// AskAction prompts for text and weight; prefill seeds the text.
	AskAction func(prefill string) (text string, weight int, err error)

	level   *slog.LevelVar
	logFile bool
	closers []io.Closer
}

type rootOptions struct {
	configPath string
	backend    string
	path       string
	theme      string
}

// bootstrap loads config, builds the logger and opens the list.
func (a *App) bootstrap(ctx context.Context, opts rootOptions) error {
	if a.Store != nil {
		return nil
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.backend != "" {
		cfg.Storage.Backend = opts.backend
	}
	if opts.path != "" {
		if cfg.Storage.Path, err = config.ExpandHome(opts.path); err != nil {
			return err
		}
	}
	if opts.theme != "" {
		cfg.UI.Theme = opts.theme
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	ui.SetTheme(cfg.UI.Theme)

	logger, err := a.newLogger(cfg.Log)
	if err != nil {
		return err
	}

	kv, err := openKV(cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}
	a.closers = append(a.closers, kv)
	logger.Debug("storage open", slog.String("backend", cfg.Storage.Backend), slog.String("path", cfg.Storage.Path))

	a.Store = list.Open(ctx, list.NewKVBridge(kv),
		list.WithLogger(logger),
		list.WithExclusiveEdit(cfg.UI.ExclusiveEdit),
	)
	return nil
}

func (a *App) newLogger(cfg config.LogConfig) (*slog.Logger, error) {
	a.level = new(slog.LevelVar)
	a.level.Set(cfg.SlogLevel())

	var w io.Writer = os.Stderr
	if cfg.File != "" {
		p, err := config.ExpandHome(cfg.File)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		a.closers = append(a.closers, f)
		a.logFile = true
		w = f
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: a.level})), nil
}

// muteStderrLogs silences logging while the alternate screen owns the
// terminal, unless logs go to a file.
func (a *App) muteStderrLogs() {
	if a.level != nil && !a.logFile {
		a.level.Set(muted)
	}
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// Close releases storage and log files.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func openKV(cfg config.StorageConfig) (store.KV, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		return jsonstore.Open(cfg.Path)
	case config.BackendSQLite:
		return sqlite.Open(filepath.Join(cfg.Path, "impact.db"))
	case config.BackendMemory:
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
