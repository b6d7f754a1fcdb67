// Package prefs persists user preferences in a local SQLite key-value store.
// Preferences live in ~/.local/share/funnel/prefs.db by default.
package prefs

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// View holds the persisted leads view preferences. Values outside the valid
// sets fall back to defaults on load.
type View struct {
	Query    string
	Status   string // "All" or a lead status
	SortKey  string // score | name | company
	SortDir  string // asc | desc
	PageSize int    // 5 | 10 | 20 | 50
}

// Prefs bundles everything funnel remembers between runs.
type Prefs struct {
	Theme string
	View  View
}

const (
	defaultPrefsPath = "~/.local/share/funnel/prefs.db"
	defaultTheme     = "Nightfox"
)

const (
	keyTheme    = "theme"
	keyQuery    = "leads.query"
	keyStatus   = "leads.status"
	keySortKey  = "leads.sort_key"
	keySortDir  = "leads.sort_dir"
	keyPageSize = "leads.page_size"
)

// PageSizes lists the selectable page sizes.
var PageSizes = []int{5, 10, 20, 50}

// DefaultView returns the leads view defaults.
func DefaultView() View {
	return View{Status: "All", SortKey: "score", SortDir: "desc", PageSize: 10}
}

// Default returns the full preference defaults.
func Default() Prefs {
	return Prefs{Theme: defaultTheme, View: DefaultView()}
}

// DefaultPath returns the default preferences database path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Store is a handle to the preferences database. A nil Store is valid: loads
// return defaults and saves are no-ops, so a broken database never takes the
// UI down.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the preferences database at path. An empty
// path uses the default location.
func Open(path string) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}

	db, err := sql.Open("sqlite", resolved)
	if err != nil {
		return nil, fmt.Errorf("open prefs db: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS prefs (k TEXT PRIMARY KEY, v TEXT NOT NULL)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init prefs schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load reads all preferences, substituting defaults for missing or invalid
// values. Load never fails; any read error degrades to defaults.
func (s *Store) Load() Prefs {
	p := Default()
	if s == nil || s.db == nil {
		return p
	}

	values := map[string]string{}
	rows, err := s.db.Query(`SELECT k, v FROM prefs`)
	if err != nil {
		return p
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return Default()
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return Default()
	}

	if theme, ok := values[keyTheme]; ok && strings.TrimSpace(theme) != "" {
		p.Theme = theme
	}
	if q, ok := values[keyQuery]; ok {
		p.View.Query = q
	}
	if status, ok := values[keyStatus]; ok && validStatus(status) {
		p.View.Status = status
	}
	if key, ok := values[keySortKey]; ok && validSortKey(key) {
		p.View.SortKey = key
	}
	if dir, ok := values[keySortDir]; ok && (dir == "asc" || dir == "desc") {
		p.View.SortDir = dir
	}
	if raw, ok := values[keyPageSize]; ok {
		if size, err := strconv.Atoi(raw); err == nil && validPageSize(size) {
			p.View.PageSize = size
		}
	}
	return p
}

// SaveView upserts the five leads view keys.
func (s *Store) SaveView(v View) error {
	return s.save(map[string]string{
		keyQuery:    v.Query,
		keyStatus:   v.Status,
		keySortKey:  v.SortKey,
		keySortDir:  v.SortDir,
		keyPageSize: strconv.Itoa(v.PageSize),
	})
}

// SaveTheme upserts the theme key.
func (s *Store) SaveTheme(name string) error {
	return s.save(map[string]string{keyTheme: name})
}

func (s *Store) save(values map[string]string) error {
	if s == nil || s.db == nil {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin prefs write: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	for k, v := range values {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO prefs(k, v) VALUES(?, ?)`, k, v); err != nil {
			return fmt.Errorf("write pref %s: %w", k, err)
		}
	}
	return tx.Commit()
}

func validStatus(value string) bool {
	switch value {
	case "All", "New", "Contacted", "Qualified":
		return true
	}
	return false
}

func validSortKey(value string) bool {
	switch value {
	case "score", "name", "company":
		return true
	}
	return false
}

func validPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
