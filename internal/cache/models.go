package cache

// Keys of the prefs table.
const (
	KeyDarkMode = "darkMode"
)

// PrefStore is the theme persistence the TUI depends on.
type PrefStore interface {
	DarkMode() (bool, error)
	SetDarkMode(dark bool) error
}

// MemoryStore is a PrefStore that keeps the flag in memory, used when the
// database cannot be opened.
type MemoryStore struct {
	Dark bool
}

func (m *MemoryStore) DarkMode() (bool, error) { return m.Dark, nil }

func (m *MemoryStore) SetDarkMode(dark bool) error {
	m.Dark = dark
	return nil
}
