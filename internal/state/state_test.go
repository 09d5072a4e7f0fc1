package state

import (
	"testing"

	"github.com/mrivas/gestor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store for tests.
type fakeStore struct {
	records map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]string{}}
}

func (f *fakeStore) Load(key string) (string, bool, error) {
	v, ok := f.records[key]
	return v, ok, nil
}

func (f *fakeStore) Save(key, value string) error {
	f.records[key] = value
	return nil
}

func (f *fakeStore) Delete(key string) error {
	delete(f.records, key)
	return nil
}

func (f *fakeStore) Close() error { return nil }

func newTestState(t *testing.T) (*State, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	st, err := New(store, nil)
	require.NoError(t, err)
	return st, store
}

func TestAddTask(t *testing.T) {
	st, _ := newTestState(t)

	task, ok, err := st.AddTask(models.TaskDraft{
		Title:       "  Buy milk  ",
		Description: "two liters",
		DueDate:     "2026-09-15",
		Priority:    models.PriorityHigh,
		Category:    "Personal",
	})
	require.NoError(t, err)
	require.True(t, ok)

	require.Len(t, st.Tasks(), 1)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "two liters", task.Description)
	assert.Equal(t, "2026-09-15", task.DueDate)
	assert.Equal(t, models.PriorityHigh, task.Priority)
	assert.Equal(t, "Personal", task.Category)
	assert.False(t, task.Completed)
	assert.NotZero(t, task.ID)
}

func TestAddTaskEmptyTitle(t *testing.T) {
	st, _ := newTestState(t)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, ok, err := st.AddTask(models.TaskDraft{Title: title})
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Empty(t, st.Tasks())
}

func TestAddTaskDefaultPriority(t *testing.T) {
	st, _ := newTestState(t)

	task, ok, err := st.AddTask(models.TaskDraft{Title: "a"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.PriorityMedium, task.Priority)
}

func TestAddTaskUniqueIDs(t *testing.T) {
	st, _ := newTestState(t)

	seen := map[int64]bool{}
	var last int64
	for i := 0; i < 100; i++ {
		task, ok, err := st.AddTask(models.TaskDraft{Title: "t"})
		require.NoError(t, err)
		require.True(t, ok)
		assert.False(t, seen[task.ID], "duplicate id %d", task.ID)
		assert.Greater(t, task.ID, last)
		seen[task.ID] = true
		last = task.ID
	}
}

func TestToggleCompleteInvolution(t *testing.T) {
	st, _ := newTestState(t)

	task, _, err := st.AddTask(models.TaskDraft{Title: "a"})
	require.NoError(t, err)

	require.NoError(t, st.ToggleComplete(task.ID))
	assert.True(t, st.Tasks()[0].Completed)

	require.NoError(t, st.ToggleComplete(task.ID))
	assert.False(t, st.Tasks()[0].Completed)
}

func TestToggleCompleteUnknownID(t *testing.T) {
	st, _ := newTestState(t)

	st.AddTask(models.TaskDraft{Title: "a"})
	require.NoError(t, st.ToggleComplete(99999))
	assert.False(t, st.Tasks()[0].Completed)
}

func TestDeleteTaskIdempotent(t *testing.T) {
	st, _ := newTestState(t)

	task, _, err := st.AddTask(models.TaskDraft{Title: "a"})
	require.NoError(t, err)
	st.AddTask(models.TaskDraft{Title: "b"})

	require.NoError(t, st.DeleteTask(task.ID))
	require.Len(t, st.Tasks(), 1)

	// Second delete is a no-op
	require.NoError(t, st.DeleteTask(task.ID))
	require.Len(t, st.Tasks(), 1)
	assert.Equal(t, "b", st.Tasks()[0].Title)
}

func TestAddCategoryIdempotent(t *testing.T) {
	st, _ := newTestState(t)

	require.NoError(t, st.AddCategory("Work"))
	require.NoError(t, st.AddCategory("Work"))
	require.NoError(t, st.AddCategory("  Work  "))
	assert.Equal(t, []string{"Work"}, st.Categories())

	// Case-sensitive: different case is a different label
	require.NoError(t, st.AddCategory("work"))
	assert.Equal(t, []string{"Work", "work"}, st.Categories())
}

func TestAddCategoryEmpty(t *testing.T) {
	st, _ := newTestState(t)

	require.NoError(t, st.AddCategory(""))
	require.NoError(t, st.AddCategory("   "))
	assert.Empty(t, st.Categories())
}

func TestDeleteCategoryNoCascade(t *testing.T) {
	st, _ := newTestState(t)

	st.AddCategory("Work")
	task, _, err := st.AddTask(models.TaskDraft{Title: "a", Category: "Work"})
	require.NoError(t, err)

	require.NoError(t, st.DeleteCategory("Work"))
	assert.Empty(t, st.Categories())

	// The task keeps its (now orphaned) category label
	require.Len(t, st.Tasks(), 1)
	assert.Equal(t, "Work", st.Tasks()[0].Category)
	assert.Equal(t, task.ID, st.Tasks()[0].ID)

	// Deleting an absent label is a no-op
	require.NoError(t, st.DeleteCategory("Work"))
}

func TestCategoryOrderPreserved(t *testing.T) {
	st, _ := newTestState(t)

	st.AddCategory("b")
	st.AddCategory("a")
	st.AddCategory("c")
	assert.Equal(t, []string{"b", "a", "c"}, st.Categories())
}

func TestLogin(t *testing.T) {
	st, _ := newTestState(t)

	require.ErrorIs(t, st.Login("", "secret"), ErrMissingFields)
	require.ErrorIs(t, st.Login("ana@example.com", ""), ErrMissingFields)
	assert.Nil(t, st.Session())

	require.NoError(t, st.Login("ana@example.com", "secret"))
	session := st.Session()
	require.NotNil(t, session)
	assert.Equal(t, "ana", session.Name)
	assert.Equal(t, "ana@example.com", session.Email)
}

func TestRegister(t *testing.T) {
	st, _ := newTestState(t)

	require.ErrorIs(t, st.Register("", "a@b.c", "x", "x"), ErrMissingFields)
	require.ErrorIs(t, st.Register("Ana", "", "x", "x"), ErrMissingFields)
	require.ErrorIs(t, st.Register("Ana", "a@b.c", "x", "y"), ErrPasswordMismatch)
	assert.Nil(t, st.Session())

	require.NoError(t, st.Register("Ana", "ana@example.com", "x", "x"))
	session := st.Session()
	require.NotNil(t, session)
	assert.Equal(t, "Ana", session.Name)
	assert.Equal(t, "ana@example.com", session.Email)
}

func TestLogoutKeepsTasksAndCategories(t *testing.T) {
	st, store := newTestState(t)

	require.NoError(t, st.Login("ana@example.com", "secret"))
	st.AddCategory("Work")
	st.AddTask(models.TaskDraft{Title: "a", Category: "Work"})

	require.NoError(t, st.Logout())
	assert.Nil(t, st.Session())

	// The session record is purged; tasks and categories stay put
	_, ok, _ := store.Load("user")
	assert.False(t, ok)
	assert.Len(t, st.Tasks(), 1)
	assert.Equal(t, []string{"Work"}, st.Categories())
}

func TestSubscribersNotified(t *testing.T) {
	st, _ := newTestState(t)

	calls := 0
	st.Subscribe(func() { calls++ })

	st.AddTask(models.TaskDraft{Title: "a"})
	assert.Equal(t, 1, calls)

	st.SetSearch("x")
	assert.Equal(t, 2, calls)

	st.SetStatusFilter(models.FilterActive)
	assert.Equal(t, 3, calls)
}

func TestEndToEndFilterScenario(t *testing.T) {
	st, _ := newTestState(t)

	a, _, err := st.AddTask(models.TaskDraft{Title: "A", Priority: models.PriorityHigh})
	require.NoError(t, err)
	b, _, err := st.AddTask(models.TaskDraft{Title: "B", Priority: models.PriorityLow})
	require.NoError(t, err)
	require.NoError(t, st.ToggleComplete(b.ID))

	st.SetStatusFilter(models.FilterActive)
	visible := st.VisibleTasks()
	require.Len(t, visible, 1)
	assert.Equal(t, a.ID, visible[0].ID)
	assert.Equal(t, "A", visible[0].Title)

	st.SetStatusFilter(models.FilterCompleted)
	visible = st.VisibleTasks()
	require.Len(t, visible, 1)
	assert.Equal(t, b.ID, visible[0].ID)
	assert.Equal(t, "B", visible[0].Title)
}
