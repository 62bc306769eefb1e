package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite"
)

// Cache is the local preference store.
type Cache struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

// DefaultPath returns $XDG_DATA_HOME/newsdesk/newsdesk.db.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, "newsdesk", "newsdesk.db")
}

func Open(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	c := &Cache{writeDB: writeDB}
	if err := c.init(); err != nil {
		c.Close()
		return nil, err
	}

	// The read handle is opened after the schema exists so mode=ro never
	// sees a missing file.
	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}
	c.readDB = readDB
	return c, nil
}

func (c *Cache) init() error {
	_, err := c.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS prefs (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	var errs []error
	if c.readDB != nil {
		errs = append(errs, c.readDB.Close())
	}
	if c.writeDB != nil {
		errs = append(errs, c.writeDB.Close())
	}
	return errors.Join(errs...)
}

// Get returns the raw value stored under key. ok is false when the key has
// never been set.
func (c *Cache) Get(key string) (value string, ok bool, err error) {
	err = c.readDB.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading pref %s: %w", key, err)
	}
	return value, true, nil
}

func (c *Cache) Set(key, value string) error {
	_, err := c.writeDB.Exec(`
		INSERT INTO prefs (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing pref %s: %w", key, err)
	}
	return nil
}

// DarkMode reads the theme flag. A missing or unreadable value is false.
func (c *Cache) DarkMode() (bool, error) {
	raw, ok, err := c.Get(KeyDarkMode)
	if err != nil || !ok {
		return false, err
	}
	var dark bool
	if err := json.Unmarshal([]byte(raw), &dark); err != nil {
		return false, nil
	}
	return dark, nil
}

// SetDarkMode stores the theme flag as a JSON boolean.
func (c *Cache) SetDarkMode(dark bool) error {
	data, _ := json.Marshal(dark)
	return c.Set(KeyDarkMode, string(data))
}
