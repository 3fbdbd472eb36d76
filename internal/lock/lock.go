// Package lock serializes writers of a local file across processes.
//
// A lock is a directory created next to the guarded file. mkdir is atomic,
// so exactly one process wins; the winner writes info.json describing
// itself so waiters can report who holds it and detect abandoned locks.
package lock

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rileyhilliard/insights/internal/errors"
)

const infoFileName = "info.json"

// Config controls waiting and stale-lock cleanup.
type Config struct {
	// Timeout is how long Acquire waits for a held lock.
	Timeout time.Duration
	// Stale is the age after which a held lock is considered abandoned and
	// removed. Zero disables stale detection.
	Stale time.Duration
	// Poll is the wait between attempts.
	Poll time.Duration
}

// DefaultConfig suits short config-file writes.
func DefaultConfig() Config {
	return Config{
		Timeout: 5 * time.Second,
		Stale:   time.Minute,
		Poll:    50 * time.Millisecond,
	}
}

// Lock is an acquired lock.
type Lock struct {
	Dir  string    // The lock directory
	Info *LockInfo // Info about the lock holder (us)
}

// Dir returns the lock directory guarding path.
func Dir(path string) string {
	return path + ".lock"
}

// Acquire takes the lock guarding path, waiting up to cfg.Timeout while
// another process holds it. Locks older than cfg.Stale are removed.
func Acquire(ctx context.Context, path string, cfg Config) (*Lock, error) {
	lockDir := Dir(path)
	deadline := time.Now().Add(cfg.Timeout)

	for {
		l, err := TryAcquire(path, cfg)
		if err == nil {
			return l, nil
		}
		if !stderrors.Is(err, ErrLocked) {
			return nil, err
		}

		if time.Now().After(deadline) {
			return nil, errors.New(errors.ErrStore,
				fmt.Sprintf("Timed out waiting for lock after %s", cfg.Timeout),
				fmt.Sprintf("Lock held by: %s. If nothing is saving, remove %s.", Holder(path), lockDir))
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.Poll):
		}
	}
}

// TryAcquire takes the lock without waiting. It returns ErrLocked when
// another process holds it.
func TryAcquire(path string, cfg Config) (*Lock, error) {
	lockDir := Dir(path)
	infoFile := filepath.Join(lockDir, infoFileName)

	if isLockStale(infoFile, cfg.Stale) {
		os.RemoveAll(lockDir) //nolint:errcheck // a failed removal surfaces as ErrLocked below
	}

	if err := os.Mkdir(lockDir, 0755); err != nil {
		if os.IsExist(err) {
			return nil, ErrLocked
		}
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			"Failed to create lock "+lockDir,
			"Check permissions on "+filepath.Dir(lockDir))
	}

	info := NewLockInfo(strings.Join(os.Args, " "))
	data, err := info.Marshal()
	if err == nil {
		err = os.WriteFile(infoFile, data, 0644)
	}
	if err != nil {
		os.RemoveAll(lockDir) //nolint:errcheck // best effort cleanup
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			"Failed to write lock info file",
			"Check disk space and permissions on "+filepath.Dir(lockDir))
	}

	return &Lock{Dir: lockDir, Info: info}, nil
}

// Release removes the lock, allowing others to acquire it.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.RemoveAll(l.Dir); err != nil {
		return errors.WrapWithCode(err, errors.ErrStore,
			"Failed to remove lock directory: "+l.Dir,
			"Remove it by hand if it lingers")
	}
	return nil
}

// Holder describes who holds the lock guarding path.
func Holder(path string) string {
	data, err := os.ReadFile(filepath.Join(Dir(path), infoFileName))
	if err != nil {
		return "unknown"
	}
	info, err := ParseLockInfo(data)
	if err != nil {
		return strings.TrimSpace(string(data))
	}
	return info.String()
}

// isLockStale checks if the lock's info file is older than the stale threshold.
// A lock without a readable info file is not stale: its holder may still be
// writing it.
func isLockStale(infoFile string, staleThreshold time.Duration) bool {
	if staleThreshold <= 0 {
		return false
	}
	data, err := os.ReadFile(infoFile)
	if err != nil {
		return false
	}
	info, err := ParseLockInfo(data)
	if err != nil {
		return false
	}
	return info.Age() > staleThreshold
}
