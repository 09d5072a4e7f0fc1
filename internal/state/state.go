// Package state owns the application state: the task collection, the
// category set, and the simulated session. Every mutation synchronously
// rewrites the affected record in the backing key/value store and then
// notifies subscribers. The container is single-owner; it is driven entirely
// from the UI event loop and needs no locking.
package state

import (
	"strings"
	"time"

	"github.com/mrivas/gestor/internal/kv"
	"github.com/mrivas/gestor/internal/models"
)

// State is the in-memory state container.
type State struct {
	store kv.Store

	tasks      []models.Task
	categories []string
	session    *models.Session

	status models.StatusFilter
	search string

	lastID int64
	subs   []func()
}

// New hydrates a State from the store. Absent or undecodable records fall
// back to defaults; seedCategories is used only when no category record has
// ever been written.
func New(store kv.Store, seedCategories []string) (*State, error) {
	s := &State{
		store:  store,
		status: models.FilterAll,
	}
	if err := s.hydrate(seedCategories); err != nil {
		return nil, err
	}
	return s, nil
}

// Subscribe registers fn to run after every state change.
func (s *State) Subscribe(fn func()) {
	s.subs = append(s.subs, fn)
}

func (s *State) notify() {
	for _, fn := range s.subs {
		fn()
	}
}

// nextID returns a fresh task id. Ids are wall-clock derived but guarded so
// that two tasks created within the same clock tick never collide.
func (s *State) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// AddTask validates the draft and appends a new task. A draft whose trimmed
// title is empty is rejected and ok is false; nothing changes. The returned
// error reports a failed mirror write only.
func (s *State) AddTask(draft models.TaskDraft) (models.Task, bool, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return models.Task{}, false, nil
	}

	priority := draft.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	task := models.Task{
		ID:          s.nextID(),
		Title:       title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Priority:    priority,
		Category:    draft.Category,
		Completed:   false,
	}
	s.tasks = append(s.tasks, task)

	err := s.mirrorTasks()
	s.notify()
	return task, true, err
}

// ToggleComplete flips the completed flag of the task with the given id.
// An unknown id is a silent no-op.
func (s *State) ToggleComplete(id int64) error {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			err := s.mirrorTasks()
			s.notify()
			return err
		}
	}
	return nil
}

// DeleteTask removes the task with the given id. An unknown id is a silent
// no-op, which also makes a repeated delete idempotent.
func (s *State) DeleteTask(id int64) error {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			err := s.mirrorTasks()
			s.notify()
			return err
		}
	}
	return nil
}

// Tasks returns the full task collection in insertion order.
func (s *State) Tasks() []models.Task {
	return s.tasks
}

// AddCategory appends a new category label. The label is trimmed; an empty
// or already-present label (case-sensitive match) is a no-op.
func (s *State) AddCategory(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}
	for _, c := range s.categories {
		if c == label {
			return nil
		}
	}
	s.categories = append(s.categories, label)

	err := s.mirrorCategories()
	s.notify()
	return err
}

// DeleteCategory removes the first exact match of label. Tasks referencing
// the label are left untouched; an absent label is a no-op.
func (s *State) DeleteCategory(label string) error {
	for i, c := range s.categories {
		if c == label {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			err := s.mirrorCategories()
			s.notify()
			return err
		}
	}
	return nil
}

// Categories returns the category labels in insertion order.
func (s *State) Categories() []string {
	return s.categories
}

// Login establishes a session from email and password. There is no real
// credential check; the display name is the local part of the email.
func (s *State) Login(email, password string) error {
	if email == "" || password == "" {
		return ErrMissingFields
	}
	name, _, _ := strings.Cut(email, "@")
	s.session = &models.Session{Name: name, Email: email}

	err := s.mirrorSession()
	s.notify()
	return err
}

// Register establishes a session from the full registration field set.
// Behaviorally identical to Login once validation passes; no user record is
// kept anywhere.
func (s *State) Register(name, email, password, confirmPassword string) error {
	if name == "" || email == "" || password == "" || confirmPassword == "" {
		return ErrMissingFields
	}
	if password != confirmPassword {
		return ErrPasswordMismatch
	}
	s.session = &models.Session{Name: name, Email: email}

	err := s.mirrorSession()
	s.notify()
	return err
}

// Logout clears the session and purges its persisted record. Tasks and
// categories are deliberately left in place under their shared keys.
func (s *State) Logout() error {
	s.session = nil
	err := s.store.Delete(keyUser)
	s.notify()
	return err
}

// Session returns the current session, or nil when unauthenticated.
func (s *State) Session() *models.Session {
	return s.session
}

// SetStatusFilter selects which completion states are visible.
func (s *State) SetStatusFilter(f models.StatusFilter) {
	s.status = f
	s.notify()
}

// StatusFilter returns the active status filter.
func (s *State) StatusFilter() models.StatusFilter {
	return s.status
}

// SetSearch sets the search term applied to the visible tasks.
func (s *State) SetSearch(term string) {
	s.search = term
	s.notify()
}

// Search returns the current search term.
func (s *State) Search() string {
	return s.search
}

// VisibleTasks derives the tasks that pass the current status filter and
// search term. Recomputed on every call; never cached.
func (s *State) VisibleTasks() []models.Task {
	return Visible(s.tasks, s.status, s.search)
}
