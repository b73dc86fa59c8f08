// Package state persists user preferences between sessions.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/pagethumbs/internal/thumbnail"
)

const (
	appName      = "pagethumbs"
	dbFileName   = "pagethumbs.db"
	saveDebounce = 500 * time.Millisecond
)

// Compile-time check that Manager can supply the default thumbnail size.
var _ thumbnail.SizeSource = (*Manager)(nil)

type Manager struct {
	db          *sql.DB
	saveMu      sync.Mutex
	saveTimer   *time.Timer
	pendingSize *int
	fallback    int
}

// Open opens the state database in the XDG data directory.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenAt(dbPath)
}

// OpenAt opens or creates the state database at dbPath.
func OpenAt(dbPath string) (*Manager, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db, fallback: thumbnail.DefaultSize}, nil
}

// SetFallbackSize sets the size ThumbnailSize reports when nothing is stored,
// typically the configured default.
func (m *Manager) SetFallbackSize(size int) {
	m.fallback = thumbnail.ClampSize(size)
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pendingSize
	m.pendingSize = nil
	m.saveMu.Unlock()

	// Flush pending state
	if pending != nil {
		_ = saveThumbnailSize(m.db, *pending)
	}

	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// ThumbnailSize returns the stored thumbnail size, or the fallback size if
// none was saved. A save still waiting for its debounce is returned as is.
func (m *Manager) ThumbnailSize() int {
	m.saveMu.Lock()
	pending := m.pendingSize
	m.saveMu.Unlock()
	if pending != nil {
		return *pending
	}

	size, ok, err := getThumbnailSize(m.db)
	if err != nil || !ok {
		return m.fallback
	}
	return thumbnail.ClampSize(size)
}

// SaveThumbnailSize stores size, clamped to the supported range. Writes are
// debounced so a size control can call this on every change.
func (m *Manager) SaveThumbnailSize(size int) {
	size = thumbnail.ClampSize(size)

	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pendingSize = &size

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pendingSize
		m.pendingSize = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveThumbnailSize(m.db, *pending)
		}
	})
}

// FlushThumbnailSize writes a pending size immediately.
func (m *Manager) FlushThumbnailSize() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pendingSize
	m.pendingSize = nil
	m.saveMu.Unlock()

	if pending == nil {
		return nil
	}
	return saveThumbnailSize(m.db, *pending)
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
