package state

import (
	"encoding/json"
	"fmt"

	"github.com/mrivas/gestor/internal/models"
)

// Keys of the persisted records. Each record is independently read and
// written; tasks and categories are shared by every session under the same
// keys.
const (
	keyTasks      = "tasks"
	keyCategories = "categories"
	keyUser       = "user"
)

// hydrate loads the persisted records into memory. A record that is absent
// or does not decode hydrates as its default; store read failures are real
// errors.
func (s *State) hydrate(seedCategories []string) error {
	if raw, ok, err := s.store.Load(keyTasks); err != nil {
		return fmt.Errorf("load tasks: %w", err)
	} else if ok {
		var tasks []models.Task
		if json.Unmarshal([]byte(raw), &tasks) == nil {
			s.tasks = tasks
		}
	}
	for _, t := range s.tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}

	raw, ok, err := s.store.Load(keyCategories)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	hydrated := false
	if ok {
		var categories []string
		if json.Unmarshal([]byte(raw), &categories) == nil {
			s.categories = categories
			hydrated = true
		}
	}
	if !hydrated {
		s.categories = append(s.categories, seedCategories...)
	}

	if raw, ok, err := s.store.Load(keyUser); err != nil {
		return fmt.Errorf("load user: %w", err)
	} else if ok {
		var session models.Session
		if json.Unmarshal([]byte(raw), &session) == nil {
			s.session = &session
		}
	}

	return nil
}

// mirrorTasks rewrites the whole task record.
func (s *State) mirrorTasks() error {
	raw, err := json.Marshal(s.tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return s.store.Save(keyTasks, string(raw))
}

// mirrorCategories rewrites the whole category record.
func (s *State) mirrorCategories() error {
	raw, err := json.Marshal(s.categories)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	return s.store.Save(keyCategories, string(raw))
}

// mirrorSession writes the session record. Only called while a session
// exists; logout deletes the record instead of blanking it.
func (s *State) mirrorSession() error {
	raw, err := json.Marshal(s.session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.store.Save(keyUser, string(raw))
}
