// Package assets resolves engine assets across layered file systems.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

type layer struct {
	fsys fs.FS
	dir  string // OS directory backing fsys, empty for virtual layers
}

// Manager searches layers in reverse order (last added = highest priority)
// and caches file contents. It implements fs.FS and fs.ReadFileFS.
type Manager struct {
	layers []layer
	cache  *Cache
	mu     sync.RWMutex
}

var (
	_ fs.FS         = (*Manager)(nil)
	_ fs.ReadFileFS = (*Manager)(nil)
)

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddFS adds a virtual layer such as an embedded file system.
func (m *Manager) AddFS(fsys fs.FS) {
	m.mu.Lock()
	m.layers = append(m.layers, layer{fsys: fsys})
	m.mu.Unlock()
}

// AddDir adds an OS directory layer.
func (m *Manager) AddDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("opening asset dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("opening asset dir %s: not a directory", dir)
	}

	m.mu.Lock()
	m.layers = append(m.layers, layer{fsys: os.DirFS(dir), dir: dir})
	m.mu.Unlock()

	return nil
}

// Load reads a file from the highest-priority layer that has it.
// The returned slice is a copy; callers may modify it.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return bytes.Clone(data), nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.layers[i].fsys, name)
		if err == nil {
			m.cache.Set(name, data)
			return bytes.Clone(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading asset %s: %w", name, err)
		}
	}

	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// ReadFile implements fs.ReadFileFS through the cache.
func (m *Manager) ReadFile(name string) ([]byte, error) {
	return m.Load(name)
}

// Open implements fs.FS without caching.
func (m *Manager) Open(name string) (fs.File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		f, err := m.layers[i].fsys.Open(name)
		if err == nil {
			return f, nil
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// Locate returns the OS path of name in the highest-priority directory layer
// holding it. Files only present in virtual layers are not found.
func (m *Manager) Locate(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		l := m.layers[i]
		if l.dir == "" {
			continue
		}
		if _, err := fs.Stat(l.fsys, name); err == nil {
			return filepath.Join(l.dir, filepath.FromSlash(name)), true
		}
	}
	return "", false
}

// Stats returns cache hits and misses.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops all layers and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.layers = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

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
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
