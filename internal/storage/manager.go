package storage

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/machine-dashboard/backend/internal/models"
	"github.com/machine-dashboard/backend/internal/parser"
)

// ErrNotLoaded is returned when no activity table has been loaded yet.
var ErrNotLoaded = errors.New("activity data not loaded")

// Factory builds a Store from a freshly parsed table.
type Factory func(table *models.ActivityTable) (Store, error)

// MemoryFactory builds MemoryStores.
func MemoryFactory() Factory {
	return func(table *models.ActivityTable) (Store, error) {
		return NewMemoryStore(table), nil
	}
}

// DuckFactory builds DuckStores in dir.
func DuckFactory(dir string, opts DuckOptions) Factory {
	return func(table *models.ActivityTable) (Store, error) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating duckdb directory: %w", err)
		}
		return NewDuckStore(dir, table, opts)
	}
}

// fileStamp identifies a version of the source file.
type fileStamp struct {
	size    int64
	modTime int64
}

// Manager owns the store for the configured CSV file. When watch is on,
// every View re-runs the load stage if the file changed on disk.
type Manager struct {
	mu      sync.RWMutex
	csvPath string
	parser  *parser.ActivityCSVParser
	factory Factory
	watch   bool

	store Store
	stamp fileStamp
}

// NewManager creates a manager; call Load before serving.
func NewManager(csvPath string, factory Factory, watch bool) *Manager {
	return &Manager{
		csvPath: csvPath,
		parser:  parser.NewActivityCSVParser(),
		factory: factory,
		watch:   watch,
	}
}

// Path returns the source CSV path.
func (m *Manager) Path() string {
	return m.csvPath
}

// Load parses the CSV and installs a new store, closing the previous one.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadLocked()
}

func (m *Manager) loadLocked() error {
	stamp, err := statFile(m.csvPath)
	if err != nil {
		return fmt.Errorf("reading activity log: %w", err)
	}

	table, err := m.parser.Parse(m.csvPath)
	if err != nil {
		return err
	}
	if len(table.ParseErrors) > 0 {
		log.Warn().
			Str("path", m.csvPath).
			Int("count", len(table.ParseErrors)).
			Int("firstLine", table.ParseErrors[0].Line).
			Str("firstReason", table.ParseErrors[0].Reason).
			Msg("unparseable timestamps kept as empty instants")
	}

	store, err := m.factory(table)
	if err != nil {
		return fmt.Errorf("building %s store: %w", m.csvPath, err)
	}

	old := m.store
	m.store = store
	m.stamp = stamp
	if old != nil {
		if err := old.Close(); err != nil {
			log.Warn().Err(err).Str("engine", old.Engine()).Msg("closing previous store")
		}
	}

	log.Info().
		Str("path", m.csvPath).
		Str("engine", store.Engine()).
		Int("rows", table.Len()).
		Msg("activity log loaded")
	return nil
}

// View runs fn against the current store, reloading first if the file changed.
// A failed reload keeps the previous store serving.
func (m *Manager) View(fn func(Store) error) error {
	if m.watch {
		m.refresh()
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.store == nil {
		return ErrNotLoaded
	}
	return fn(m.store)
}

func (m *Manager) refresh() {
	stamp, err := statFile(m.csvPath)

	m.mu.RLock()
	current := m.stamp
	loaded := m.store != nil
	m.mu.RUnlock()

	if err != nil {
		if loaded {
			log.Warn().Err(err).Str("path", m.csvPath).Msg("activity log unreadable; serving previous data")
		}
		return
	}
	if loaded && stamp == current {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.store != nil && m.stamp == stamp {
		return
	}
	if err := m.loadLocked(); err != nil {
		log.Error().Err(err).Str("path", m.csvPath).Msg("reloading activity log")
	}
}

// Close closes the current store.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.store == nil {
		return nil
	}
	err := m.store.Close()
	m.store = nil
	return err
}

func statFile(path string) (fileStamp, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return fileStamp{}, err
	}
	return fileStamp{size: fi.Size(), modTime: fi.ModTime().UnixNano()}, nil
}
