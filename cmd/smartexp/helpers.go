package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/steezy2401/smartexp/internal/config"
	"github.com/steezy2401/smartexp/internal/session"
	"github.com/steezy2401/smartexp/internal/storage"
)

// initStorage opens the database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/smartexp/smartexp.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// initSessions opens the on-disk session store.
func initSessions() (*session.Store, error) {
	sessionPath := viper.GetString("sessions.path")
	if sessionPath == "" {
		sessionPath = "$HOME/.local/share/smartexp/sessions"
	}
	return session.NewStore(config.ExpandPath(sessionPath))
}
