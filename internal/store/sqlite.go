package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rileyhilliard/insights/internal/config"
	"github.com/rileyhilliard/insights/internal/errors"
	"github.com/rileyhilliard/insights/internal/logger"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"
)

// DefaultSQLiteFile is the database file name under the global config dir.
const DefaultSQLiteFile = "insights.db"

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS layout_revisions (
		id       TEXT PRIMARY KEY,
		profile  TEXT NOT NULL,
		saved_at TEXT NOT NULL,
		body     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_layout_revisions_profile
		ON layout_revisions(profile)`,
}

// Revision is one saved dashboard state.
type Revision struct {
	ID      string
	Profile string
	SavedAt time.Time
	Config  *config.Config
}

// SQLiteStore appends a revision per save and loads the newest one for its
// profile.
type SQLiteStore struct {
	db      *sql.DB
	profile string
	base    *config.Config
	now     func() time.Time
	log     logger.Logger
}

// DefaultSQLitePath returns ~/.config/insights/insights.db, or the file name
// alone when the home directory is unknown.
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultSQLiteFile
	}
	return filepath.Join(home, config.GlobalConfigDir, DefaultSQLiteFile)
}

// OpenSQLite opens (creating if needed) the database at path.
// If path is ":memory:", uses an in-memory database.
func OpenSQLite(path, profile string, base *config.Config) (*SQLiteStore, error) {
	if base == nil {
		base = config.DefaultConfig()
	}
	if profile == "" {
		profile = "default"
	}

	db, err := openDB(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			"Failed to open layout database",
			"Check store.path in your .insights.yaml points somewhere writable")
	}

	return &SQLiteStore{
		db:      db,
		profile: profile,
		base:    base,
		now:     time.Now,
		log:     logger.Default(),
	}, nil
}

func openDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Each connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return db, nil
}

// Profile returns the profile revisions are recorded under.
func (s *SQLiteStore) Profile() string {
	return s.profile
}

func (s *SQLiteStore) Load(ctx context.Context) (*config.Config, error) {
	query := `SELECT body FROM layout_revisions
		WHERE profile = ? ORDER BY rowid DESC LIMIT 1`

	var body string
	err := s.db.QueryRowContext(ctx, query, s.profile).Scan(&body)
	if err == sql.ErrNoRows {
		return s.base.Clone(), nil
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			"Failed to load saved dashboard",
			"The layout database may be corrupt; try a different store.path")
	}
	return s.decode(body)
}

func (s *SQLiteStore) Save(ctx context.Context, cfg *config.Config) error {
	body, err := yaml.Marshal(stateOf(cfg))
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrStore, "Failed to encode dashboard state", "")
	}

	id := uuid.New().String()
	query := `INSERT INTO layout_revisions (id, profile, saved_at, body) VALUES (?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		id,
		s.profile,
		s.now().UTC().Format(time.RFC3339Nano),
		string(body),
	)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrStore,
			"Failed to save dashboard",
			"Check the layout database is writable")
	}

	s.log.Debug("dashboard saved as revision %s (profile %s)", id, s.profile)
	return nil
}

// Revisions lists the profile's revisions, newest first. limit <= 0 lists all.
func (s *SQLiteStore) Revisions(ctx context.Context, limit int) ([]Revision, error) {
	query := `SELECT id, profile, saved_at, body FROM layout_revisions
		WHERE profile = ? ORDER BY rowid DESC`
	args := []any{s.profile}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStore, "Failed to list revisions", "")
	}
	defer rows.Close()

	var out []Revision
	for rows.Next() {
		rev, err := s.scanRevision(rows)
		if err != nil {
			if errors.IsCode(err, errors.ErrStore) {
				return nil, err
			}
			return nil, errors.WrapWithCode(err, errors.ErrStore, "Failed to read revision", "")
		}
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStore, "Failed to list revisions", "")
	}
	return out, nil
}

// Revision loads one revision by id.
func (s *SQLiteStore) Revision(ctx context.Context, id string) (Revision, error) {
	query := `SELECT id, profile, saved_at, body FROM layout_revisions
		WHERE profile = ? AND id = ?`
	rev, err := s.scanRevision(s.db.QueryRowContext(ctx, query, s.profile, id))
	if err != nil {
		if errors.IsCode(err, errors.ErrStore) {
			return Revision{}, err
		}
		return Revision{}, errors.WrapWithCode(err, errors.ErrStore,
			"Revision "+id+" not found",
			"Run 'insights sections history' to list saved revisions")
	}
	return rev, nil
}

// Prune deletes all but the newest keep revisions of the profile.
func (s *SQLiteStore) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	query := `DELETE FROM layout_revisions WHERE profile = ? AND rowid NOT IN (
		SELECT rowid FROM layout_revisions WHERE profile = ? ORDER BY rowid DESC LIMIT ?)`
	res, err := s.db.ExecContext(ctx, query, s.profile, s.profile, keep)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrStore, "Failed to prune revisions", "")
	}
	return res.RowsAffected()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanRevision(row scanner) (Revision, error) {
	var (
		rev     Revision
		savedAt string
		body    string
	)
	if err := row.Scan(&rev.ID, &rev.Profile, &savedAt, &body); err != nil {
		return Revision{}, err
	}

	t, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return Revision{}, errors.WrapWithCode(err, errors.ErrStore,
			"Revision "+rev.ID+" has an unreadable timestamp", "")
	}
	rev.SavedAt = t

	cfg, err := s.decode(body)
	if err != nil {
		return Revision{}, err
	}
	rev.Config = cfg
	return rev, nil
}

func (s *SQLiteStore) decode(body string) (*config.Config, error) {
	var st state
	if err := yaml.Unmarshal([]byte(body), &st); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			"Saved dashboard state is unreadable",
			"Save the dashboard again to write a fresh revision")
	}
	return st.applyTo(s.base), nil
}
