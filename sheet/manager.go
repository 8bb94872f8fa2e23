package sheet

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/deep-bhut-zeuslearning/excel/grid"
)

// Options configure sheets created or loaded by a Manager.
type Options struct {
	Rows         int
	Cols         int
	MaxRows      int
	MaxCols      int
	HistoryLimit int
	Evaluator    grid.Evaluator
}

// Manager owns every sheet and persists each one as its own JSON file
// under the data directory.
type Manager struct {
	dir    string
	opts   Options
	sheets map[string]*Sheet
	mu     sync.RWMutex
}

// NewManager creates a manager persisting under dir.
func NewManager(dir string, opts Options) *Manager {
	if opts.Rows <= 0 {
		opts.Rows = 100
	}
	if opts.Cols <= 0 {
		opts.Cols = 26
	}
	if opts.MaxRows <= 0 {
		opts.MaxRows = 100000
	}
	if opts.MaxCols <= 0 {
		opts.MaxCols = 500
	}
	return &Manager{
		dir:    dir,
		opts:   opts,
		sheets: make(map[string]*Sheet),
	}
}

func (m *Manager) sheetPath(id string) string {
	return filepath.Join(m.dir, id+".json")
}

// Create makes a new empty sheet, registers it and persists it.
func (m *Manager) Create(name, owner string) *Sheet {
	store := grid.New(m.opts.Rows, m.opts.Cols, m.opts.MaxRows, m.opts.MaxCols)
	store.SetEvaluator(m.opts.Evaluator)
	s := New(uuid.NewString(), name, owner, store, m.opts.HistoryLimit)

	m.mu.Lock()
	m.sheets[s.ID] = s
	m.mu.Unlock()

	m.Save(s)
	return s
}

// Get returns the sheet with the given id, or nil.
func (m *Manager) Get(id string) *Sheet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sheets[id]
}

// List returns all sheets ordered by name.
func (m *Manager) List() []*Sheet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Sheet, 0, len(m.sheets))
	for _, s := range m.sheets {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Rename changes a sheet's display name. Returns false if the sheet does
// not exist.
func (m *Manager) Rename(id, newName string) bool {
	s := m.Get(id)
	if s == nil {
		return false
	}
	s.mu.Lock()
	s.Name = newName
	s.mu.Unlock()
	m.Save(s)
	return true
}

// Delete removes a sheet from memory and disk.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	_, ok := m.sheets[id]
	delete(m.sheets, id)
	m.mu.Unlock()
	if !ok {
		return false
	}
	if err := os.Remove(m.sheetPath(id)); err != nil && !os.IsNotExist(err) {
		slog.Error("delete sheet file", "id", id, "error", err)
	}
	return true
}

// Save persists one sheet. Errors are logged, not returned; persistence is
// best-effort like the rest of the fail-soft surface.
func (m *Manager) Save(s *Sheet) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		slog.Error("create data dir", "dir", m.dir, "error", err)
		return
	}
	file, err := os.Create(m.sheetPath(s.ID))
	if err != nil {
		slog.Error("save sheet", "id", s.ID, "error", err)
		return
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		slog.Error("encode sheet", "id", s.ID, "error", err)
	}
}

// SaveAll persists every registered sheet.
func (m *Manager) SaveAll() {
	for _, s := range m.List() {
		m.Save(s)
	}
}

// Load reads every sheet file from the data directory into memory.
// Missing directory means a fresh start, not an error.
func (m *Manager) Load() {
	files, err := filepath.Glob(filepath.Join(m.dir, "*.json"))
	if err != nil {
		slog.Error("scan data dir", "dir", m.dir, "error", err)
		return
	}

	loaded := 0
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, path := range files {
		base := filepath.Base(path)
		if base == "users.json" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Error("open sheet file", "path", path, "error", err)
			continue
		}
		var snap snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			slog.Error("decode sheet file", "path", path, "error", err)
			continue
		}
		if snap.ID == "" {
			continue
		}
		m.sheets[snap.ID] = fromSnapshot(snap, m.opts.Evaluator, m.opts.HistoryLimit)
		loaded++
	}
	slog.Info("sheets loaded", "count", loaded)
}
