package db

import (
	"context"
	"sync"

	"roster-app-go/models"
)

// MemoryTaskStore keeps task lists in process memory
type MemoryTaskStore struct {
	mu    sync.RWMutex
	lists map[string][]string
}

// NewMemoryTaskStore creates an empty MemoryTaskStore
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{lists: make(map[string][]string)}
}

// List returns the owner's tasks in insertion order
func (s *MemoryTaskStore) List(_ context.Context, owner string) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return toTasks(s.lists[owner]), nil
}

// Add appends a task to the owner's list
func (s *MemoryTaskStore) Add(_ context.Context, owner, text string) error {
	if err := validateTask(text); err != nil {
		return err
	}
	s.mu.Lock()
	s.lists[owner] = append(s.lists[owner], text)
	s.mu.Unlock()
	return nil
}

// Remove deletes the task at index, shifting later tasks up
func (s *MemoryTaskStore) Remove(_ context.Context, owner string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.lists[owner]
	if index < 0 || index >= len(list) {
		return ErrTaskNotFound
	}
	next := make([]string, 0, len(list)-1)
	next = append(next, list[:index]...)
	next = append(next, list[index+1:]...)
	if len(next) == 0 {
		delete(s.lists, owner)
		return nil
	}
	s.lists[owner] = next
	return nil
}
