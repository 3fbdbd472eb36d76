package store

import (
	"context"
	"os"

	"github.com/rileyhilliard/insights/internal/config"
	"github.com/rileyhilliard/insights/internal/errors"
	"github.com/rileyhilliard/insights/internal/lock"
	"github.com/rileyhilliard/insights/internal/logger"
)

// FileStore keeps the dashboard state in the YAML config file itself.
// Saves hold a lock next to the file so a dashboard and a CLI command
// saving at the same time do not interleave their rewrites.
type FileStore struct {
	path string
	base *config.Config
	lock lock.Config
	log  logger.Logger
}

// NewFileStore creates a store writing to path. base is returned by Load
// when the file does not exist yet.
func NewFileStore(path string, base *config.Config) *FileStore {
	if base == nil {
		base = config.DefaultConfig()
	}
	return &FileStore{path: path, base: base, lock: lock.DefaultConfig(), log: logger.Default()}
}

// Path returns the config file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) (*config.Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return s.base.Clone(), nil
	}
	cfg, err := config.Load(s.path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			"Failed to load saved dashboard",
			"Check "+s.path+" is valid YAML")
	}
	return cfg, nil
}

func (s *FileStore) Save(ctx context.Context, cfg *config.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l, err := lock.Acquire(ctx, s.path, s.lock)
	if err != nil {
		return err
	}
	defer l.Release() //nolint:errcheck // a leftover lock goes stale

	if err := config.Update(s.path, cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrStore,
			"Failed to save dashboard",
			"Check permissions on "+s.path)
	}
	s.log.Debug("dashboard saved to %s", s.path)
	return nil
}

// Close is a no-op.
func (s *FileStore) Close() error {
	return nil
}
