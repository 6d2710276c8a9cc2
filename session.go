package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sadopc/novanotes/internal/config"
	"github.com/sadopc/novanotes/internal/core"
	"github.com/sadopc/novanotes/internal/logging"
	"github.com/sadopc/novanotes/internal/mission"
	"github.com/sadopc/novanotes/internal/store"
)

// session holds everything a command needs: config, database and the
// rehydrated mission store.
type session struct {
	cfg    *config.Config
	db     *store.Store
	core   *core.Store
	logger *slog.Logger
	logs   io.Closer
}

func openSession(cmd *cobra.Command, rehydrate bool) (*session, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}

	logger, logs, err := logging.Open(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	db, err := store.New(cfg.Storage.Path)
	if err != nil {
		logs.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	sess := &session{
		cfg:    cfg,
		db:     db,
		core:   core.New(db, core.Options{Logger: logger, Journal: db}),
		logger: logger,
		logs:   logs,
	}
	if rehydrate {
		if err := sess.core.Rehydrate(cmd.Context()); err != nil {
			sess.Close()
			return nil, err
		}
	}
	return sess, nil
}

func (s *session) Close() error {
	err := s.db.Close()
	s.logs.Close()
	return err
}

// dispatch applies a and reports any achievements it unlocked.
func (s *session) dispatch(w io.Writer, a mission.Action) error {
	prev := s.core.State()
	if err := s.core.Dispatch(a); err != nil {
		return err
	}
	for _, ach := range mission.NewlyUnlocked(prev, s.core.State()) {
		fmt.Fprintf(w, "%s Achievement unlocked: %s (%s)\n", ach.Icon, ach.Name, ach.Description)
	}
	return nil
}

// withSession opens a rehydrated session for the duration of fn.
func withSession(fn func(cmd *cobra.Command, args []string, s *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, true)
		if err != nil {
			return err
		}
		defer s.Close()
		return fn(cmd, args, s)
	}
}
