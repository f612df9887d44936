// Package memory keeps ownerless goals in memory, optionally mirrored to a
// local JSON file.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"fintrack/internal/core"

	"github.com/google/uuid"
)

// GoalStore satisfies storage.GoalRepository. Owner arguments are ignored.
type GoalStore struct {
	mu    sync.Mutex
	path  string
	items []core.Goal
	now   func() time.Time
}

// New returns an empty store that never touches disk.
func New() *GoalStore {
	return &GoalStore{now: time.Now}
}

// NewFromFile loads goals from path. A missing file starts empty and is
// created on the first write.
func NewFromFile(path string) (*GoalStore, error) {
	s := &GoalStore{path: path, now: time.Now}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read goals file: %w", err)
	}
	if len(b) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(b, &s.items); err != nil {
		return nil, fmt.Errorf("decode goals file: %w", err)
	}
	return s, nil
}

func (s *GoalStore) List(_ context.Context, _ string) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.Goal{}, s.items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *GoalStore) Get(_ context.Context, _ string, id string) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return core.Goal{}, fmt.Errorf("goal %s: %w", id, core.ErrNotFound)
	}
	return s.items[i], nil
}

func (s *GoalStore) Create(_ context.Context, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = s.now().UTC()
	}
	s.items = append(s.items, g)
	if err := s.flush(); err != nil {
		s.items = s.items[:len(s.items)-1]
		return core.Goal{}, err
	}
	return g, nil
}

func (s *GoalStore) Update(_ context.Context, _ string, id string, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return core.Goal{}, fmt.Errorf("goal %s: %w", id, core.ErrNotFound)
	}
	prev := s.items[i]
	g.ID = prev.ID
	g.CreatedAt = prev.CreatedAt
	s.items[i] = g
	if err := s.flush(); err != nil {
		s.items[i] = prev
		return core.Goal{}, err
	}
	return g, nil
}

func (s *GoalStore) Delete(_ context.Context, _ string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("goal %s: %w", id, core.ErrNotFound)
	}
	prev := append([]core.Goal(nil), s.items...)
	s.items = append(s.items[:i], s.items[i+1:]...)
	if err := s.flush(); err != nil {
		s.items = prev
		return err
	}
	return nil
}

// AddProgress adds amount to a goal's current amount.
func (s *GoalStore) AddProgress(_ context.Context, id string, amount core.Money) (core.Goal, error) {
	if amount.IsNegative() {
		return core.Goal{}, core.ErrNegativeAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return core.Goal{}, fmt.Errorf("goal %s: %w", id, core.ErrNotFound)
	}
	prev := s.items[i]
	s.items[i].CurrentAmount = prev.CurrentAmount.Add(amount)
	if err := s.flush(); err != nil {
		s.items[i] = prev
		return core.Goal{}, err
	}
	return s.items[i], nil
}

func (s *GoalStore) index(id string) int {
	for i, g := range s.items {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// flush writes the whole list through a temp file. Caller holds mu.
func (s *GoalStore) flush() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create goals directory: %w", err)
	}
	b, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode goals: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write goals file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace goals file: %w", err)
	}
	return nil
}
