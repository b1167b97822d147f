package db

import (
	"context"
	"errors"
	"strings"

	"roster-app-go/models"
)

var (
	// ErrEmptyTask is returned when the task text is blank
	ErrEmptyTask = errors.New("task text cannot be empty")
	// ErrTaskNotFound is returned when no task exists at the given position
	ErrTaskNotFound = errors.New("task not found")
)

// TaskStore holds one insertion-ordered to-do list per owner
type TaskStore interface {
	List(ctx context.Context, owner string) ([]models.Task, error)
	Add(ctx context.Context, owner, text string) error
	Remove(ctx context.Context, owner string, index int) error
}

// validateTask rejects text that is blank once trimmed. The stored text is not trimmed.
func validateTask(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyTask
	}
	return nil
}

func toTasks(texts []string) []models.Task {
	tasks := make([]models.Task, 0, len(texts))
	for i, text := range texts {
		tasks = append(tasks, models.Task{Index: i, Text: text})
	}
	return tasks
}
