// Package workspace owns the open-tab list and sidebar state for one editor
// session. The Store is the only writer; readers get copies.
package workspace

import (
	"errors"
	"sync"

	"devfolio/internal/catalog"
)

// ErrTabNotFound is returned by SetActiveTab when no tab matches the name.
var ErrTabNotFound = errors.New("tab not found")

// Tab is an open handle onto a catalog file.
type Tab struct {
	File   catalog.File
	Active bool
}

// Store holds the file catalog, the ordered tab list and sidebar visibility.
// At most one tab is active; exactly one while the list is non-empty.
// Safe for concurrent use.
type Store struct {
	mu             sync.RWMutex
	files          []catalog.File
	tabs           []Tab
	sidebarVisible bool
}

// NewStore creates a store over files with the first file open and active.
func NewStore(files []catalog.File) *Store {
	s := &Store{
		files:          append([]catalog.File(nil), files...),
		sidebarVisible: true,
	}
	if len(files) > 0 {
		s.tabs = []Tab{{File: files[0], Active: true}}
	}
	return s
}

// Files returns the catalog in order.
func (s *Store) Files() []catalog.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]catalog.File(nil), s.files...)
}

// File looks a catalog file up by name.
func (s *Store) File(name string) (catalog.File, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.Find(s.files, name)
}

// Tabs returns a snapshot of the tab list.
func (s *Store) Tabs() []Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Tab(nil), s.tabs...)
}

// Active returns the active tab, or false when no tabs are open.
func (s *Store) Active() (Tab, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.activeIndex(); i >= 0 {
		return s.tabs[i], true
	}
	return Tab{}, false
}

// IsActive reports whether name is the active tab's file.
func (s *Store) IsActive(name string) bool {
	t, ok := s.Active()
	return ok && t.File.Name == name
}

// SidebarVisible reports whether the explorer is shown.
func (s *Store) SidebarVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebarVisible
}

// ToggleSidebar flips explorer visibility.
func (s *Store) ToggleSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarVisible = !s.sidebarVisible
}

// OpenFile activates the existing tab for file.Name without reordering, or
// appends a new active tab. All other tabs become inactive.
func (s *Store) OpenFile(file catalog.File) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(file.Name); i >= 0 {
		s.activate(i)
		return
	}
	s.tabs = append(s.tabs, Tab{File: file})
	s.activate(len(s.tabs) - 1)
}

// CloseTab removes the tab for name. When the removed tab was active and
// others remain, the tab at min(removedIndex, newLen-1) becomes active.
// Unknown names are ignored.
func (s *Store) CloseTab(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(name)
	if i < 0 {
		return
	}
	wasActive := s.tabs[i].Active
	next := make([]Tab, 0, len(s.tabs)-1)
	next = append(next, s.tabs[:i]...)
	next = append(next, s.tabs[i+1:]...)
	s.tabs = next
	if wasActive && len(s.tabs) > 0 {
		s.activate(min(i, len(s.tabs)-1))
	}
}

// SetActiveTab makes the tab for name the only active tab. When no tab
// matches, the tab list is left untouched and ErrTabNotFound is returned.
func (s *Store) SetActiveTab(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(name)
	if i < 0 {
		return ErrTabNotFound
	}
	s.activate(i)
	return nil
}

// NextTab activates the tab after the active one, wrapping around.
func (s *Store) NextTab() {
	s.step(1)
}

// PrevTab activates the tab before the active one, wrapping around.
func (s *Store) PrevTab() {
	s.step(-1)
}

func (s *Store) step(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.tabs)
	if n == 0 {
		return
	}
	i := s.activeIndex()
	if i < 0 {
		i = 0
	}
	s.activate(((i+delta)%n + n) % n)
}

// activate must be called with mu held.
func (s *Store) activate(idx int) {
	for i := range s.tabs {
		s.tabs[i].Active = i == idx
	}
}

func (s *Store) indexOf(name string) int {
	for i, t := range s.tabs {
		if t.File.Name == name {
			return i
		}
	}
	return -1
}

func (s *Store) activeIndex() int {
	for i, t := range s.tabs {
		if t.Active {
			return i
		}
	}
	return -1
}
