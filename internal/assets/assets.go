// Package assets loads and caches sprite atlases, palettes and levels.
package assets

import (
	"bytes"
	"embed"
	"io/fs"
	"os"
	"path"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/Faultbox/pocketsprite/internal/engine/tilemap"
	"github.com/Faultbox/pocketsprite/pkg/atlas"
	"github.com/Faultbox/pocketsprite/pkg/palette"
)

//go:embed data
var embedded embed.FS

// ErrNotFound is returned when no source holds the requested asset.
var ErrNotFound = errors.New("asset not found")

// Manager resolves asset names against the embedded defaults and any added
// directories, and parses each asset once. Parsed atlases are immutable and
// shared by every caller.
type Manager struct {
	sources []fs.FS
	cache   *Cache

	mu       sync.RWMutex
	atlases  map[string]*atlas.Atlas
	palettes map[string]palette.Palette
	levels   map[string]*tilemap.Level
}

// NewManager creates a manager backed by the embedded assets.
func NewManager() *Manager {
	data, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return &Manager{
		sources:  []fs.FS{data},
		cache:    NewCache(),
		atlases:  make(map[string]*atlas.Atlas),
		palettes: make(map[string]palette.Palette),
		levels:   make(map[string]*tilemap.Level),
	}
}

// AddDir adds a directory of assets. Sources are searched in reverse order
// (last added = highest priority), so a directory overrides embedded files.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errors.Wrapf(err, "adding asset dir %s", dir)
	}
	if !info.IsDir() {
		return errors.Errorf("adding asset dir %s: not a directory", dir)
	}

	m.mu.Lock()
	m.sources = append(m.sources, os.DirFS(dir))
	m.mu.Unlock()

	return nil
}

// Load returns the raw bytes of an asset.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.sources) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.sources[i], path.Clean(name))
		if err == nil {
			m.cache.Set(name, data)
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "reading %s", name)
		}
	}

	return nil, errors.Wrap(ErrNotFound, name)
}

// Atlas returns the parsed atlas stored in a text table file.
func (m *Manager) Atlas(name string) (*atlas.Atlas, error) {
	m.mu.RLock()
	a, ok := m.atlases[name]
	m.mu.RUnlock()
	if ok {
		return a, nil
	}

	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	a, err = atlas.Load(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "loading atlas %s", name)
	}

	m.mu.Lock()
	m.atlases[name] = a
	m.mu.Unlock()

	return a, nil
}

// Palette returns a palette stored as YAML.
func (m *Manager) Palette(name string) (palette.Palette, error) {
	m.mu.RLock()
	p, ok := m.palettes[name]
	m.mu.RUnlock()
	if ok {
		return p, nil
	}

	data, err := m.Load(name)
	if err != nil {
		return palette.Palette{}, err
	}
	p, err = palette.Load(bytes.NewReader(data))
	if err != nil {
		return palette.Palette{}, errors.Wrapf(err, "loading palette %s", name)
	}

	m.mu.Lock()
	m.palettes[name] = p
	m.mu.Unlock()

	return p, nil
}

// Level returns a level layout stored as YAML.
func (m *Manager) Level(name string) (*tilemap.Level, error) {
	m.mu.RLock()
	lvl, ok := m.levels[name]
	m.mu.RUnlock()
	if ok {
		return lvl, nil
	}

	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	lvl, err = tilemap.LoadLevel(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "loading level %s", name)
	}

	m.mu.Lock()
	m.levels[name] = lvl
	m.mu.Unlock()

	return lvl, nil
}

// List returns the names of all assets visible through the manager.
func (m *Manager) List() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	for _, src := range m.sources {
		err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				seen[p] = true
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(err, "listing assets")
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Stats returns raw cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops every cached asset.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.atlases = make(map[string]*atlas.Atlas)
	m.palettes = make(map[string]palette.Palette)
	m.levels = make(map[string]*tilemap.Level)
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded asset bytes.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
