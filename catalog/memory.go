package catalog

import (
	"fmt"
	"sync"
)

// Memory is an in-memory View whose contents can be changed while it is being read.
type Memory struct {
	mutex       sync.RWMutex
	collections []Collection
}

// NewMemory returns a catalog holding the given collections.
func NewMemory(collections ...Collection) *Memory {
	m := &Memory{}
	m.Replace(collections)
	return m
}

func copyCollection(c Collection) Collection {
	if c.Extent != nil {
		extent := *c.Extent
		c.Extent = &extent
	}
	c.Formats = append([]string(nil), c.Formats...)
	return c
}

func (m *Memory) ListCollections() []Collection {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	ret := make([]Collection, len(m.collections))
	for i, c := range m.collections {
		ret[i] = copyCollection(c)
	}
	return ret
}

// Add appends a collection. It is an error to add two collections with the same name.
func (m *Memory) Add(c Collection) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, existing := range m.collections {
		if existing.Name == c.Name {
			return fmt.Errorf("collection %v already exists", c.Name)
		}
	}
	m.collections = append(m.collections, copyCollection(c))
	return nil
}

// Remove deletes the named collection and reports whether it was present.
func (m *Memory) Remove(name string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for i, c := range m.collections {
		if c.Name == name {
			m.collections = append(m.collections[:i:i], m.collections[i+1:]...)
			return true
		}
	}
	return false
}

// Replace swaps the entire contents of the catalog.
func (m *Memory) Replace(collections []Collection) {
	cp := make([]Collection, len(collections))
	for i, c := range collections {
		cp[i] = copyCollection(c)
	}
	m.mutex.Lock()
	m.collections = cp
	m.mutex.Unlock()
}

// DefaultMaxPageSize is the page size limit of a Settings that was never given one.
const DefaultMaxPageSize = 1000000

// Settings is a ServiceConfig and Describer that can be updated at runtime.
type Settings struct {
	mutex       sync.RWMutex
	maxPageSize int
	title       string
	description string
}

func (s *Settings) MaxPageSize() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.maxPageSize <= 0 {
		return DefaultMaxPageSize
	}
	return s.maxPageSize
}

func (s *Settings) SetMaxPageSize(n int) {
	s.mutex.Lock()
	s.maxPageSize = n
	s.mutex.Unlock()
}

func (s *Settings) Title() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.title
}

func (s *Settings) Description() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.description
}

// SetDescription updates the title and description together.
func (s *Settings) SetDescription(title, description string) {
	s.mutex.Lock()
	s.title = title
	s.description = description
	s.mutex.Unlock()
}
