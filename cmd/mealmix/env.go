package main

import (
	"context"

	"github.com/jacksmith/mealmix/internal/app"
	"github.com/jacksmith/mealmix/internal/logging"
	"github.com/jacksmith/mealmix/internal/mealdb"
	"github.com/jacksmith/mealmix/internal/remix"
	"github.com/jacksmith/mealmix/internal/storage"
	"go.uber.org/zap"
)

// env is everything a command needs, built from flags and config.
type env struct {
	home  *storage.Home
	cfg   *storage.Config
	log   *zap.Logger
	store storage.Backend
}

// openHome resolves the home directory and loads its config.
func openHome() (*storage.Home, *storage.Config, error) {
	dir, err := storage.ResolveHome(homeDir)
	if err != nil {
		return nil, nil, err
	}
	home, err := storage.OpenHome(dir)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := home.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if ephemeral {
		cfg.Store.Backend = storage.BackendMemory
	}
	return home, cfg, nil
}

// openEnv opens the home directory, logger and saved-recipe store.
// Callers must Close it.
func openEnv(ctx context.Context) (*env, error) {
	home, cfg, err := openHome()
	if err != nil {
		return nil, err
	}
	log := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, nil)

	store, err := home.OpenBackend(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	log.Debug("opened store", zap.String("backend", cfg.Store.Backend), zap.String("path", cfg.Store.Path))

	return &env{home: home, cfg: cfg, log: log, store: store}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("failed to close store", zap.Error(err))
	}
	_ = e.log.Sync()
}

func (e *env) remixOptions() remix.Options {
	return remix.Options{
		Model:    e.cfg.Remix.Model,
		APIKey:   e.cfg.Remix.APIKey,
		BaseURL:  e.cfg.Remix.BaseURL,
		ProxyURL: e.cfg.Remix.ProxyURL,
		Timeout:  e.cfg.HTTPTimeout,
	}
}

func (e *env) deps() app.Deps {
	return app.Deps{
		Recipes: mealdb.New(e.cfg.MealDBURL, e.cfg.HTTPTimeout, e.log.Named("mealdb")),
		Remix:   remix.New(e.remixOptions(), e.log.Named("remix")),
		Store:   e.store,
		Log:     e.log,
	}
}
