package state

import (
	"encoding/json"
	"testing"

	"github.com/mrivas/gestor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHydrateRoundTrip(t *testing.T) {
	store := newFakeStore()

	first, err := New(store, nil)
	require.NoError(t, err)
	require.NoError(t, first.Login("ana@example.com", "secret"))
	first.AddCategory("Work")
	first.AddCategory("Home")
	first.AddTask(models.TaskDraft{Title: "a", Description: "d", DueDate: "2026-01-01", Priority: models.PriorityHigh, Category: "Work"})
	b, _, _ := first.AddTask(models.TaskDraft{Title: "b", Category: "Home"})
	first.ToggleComplete(b.ID)

	// A fresh container over the same store sees identical collections
	second, err := New(store, nil)
	require.NoError(t, err)
	assert.Equal(t, first.Tasks(), second.Tasks())
	assert.Equal(t, []string{"Work", "Home"}, second.Categories())
	require.NotNil(t, second.Session())
	assert.Equal(t, "ana", second.Session().Name)
}

func TestHydrateEmptyStore(t *testing.T) {
	st, err := New(newFakeStore(), nil)
	require.NoError(t, err)
	assert.Empty(t, st.Tasks())
	assert.Empty(t, st.Categories())
	assert.Nil(t, st.Session())
}

func TestHydrateSeedCategories(t *testing.T) {
	st, err := New(newFakeStore(), []string{"Personal", "Work", "Study"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Personal", "Work", "Study"}, st.Categories())

	// A persisted record wins over the seed
	store := newFakeStore()
	store.Save("categories", `["Other"]`)
	st, err = New(store, []string{"Personal"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Other"}, st.Categories())
}

func TestHydrateMalformedRecords(t *testing.T) {
	store := newFakeStore()
	store.Save("tasks", "{not json")
	store.Save("categories", "42")
	store.Save("user", "][")

	st, err := New(store, []string{"Personal"})
	require.NoError(t, err)
	assert.Empty(t, st.Tasks())
	assert.Equal(t, []string{"Personal"}, st.Categories(), "malformed categories fall back to the seed")
	assert.Nil(t, st.Session())
}

func TestMirrorWritesOnEveryTaskMutation(t *testing.T) {
	store := newFakeStore()
	st, err := New(store, nil)
	require.NoError(t, err)

	task, _, _ := st.AddTask(models.TaskDraft{Title: "a"})

	var persisted []models.Task
	raw, ok, _ := store.Load("tasks")
	require.True(t, ok)
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	require.Len(t, persisted, 1)
	assert.False(t, persisted[0].Completed)

	st.ToggleComplete(task.ID)
	raw, _, _ = store.Load("tasks")
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.True(t, persisted[0].Completed)

	st.DeleteTask(task.ID)
	raw, _, _ = store.Load("tasks")
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Empty(t, persisted)
}

func TestMirrorWritesOnCategoryMutation(t *testing.T) {
	store := newFakeStore()
	st, err := New(store, nil)
	require.NoError(t, err)

	st.AddCategory("Work")
	raw, ok, _ := store.Load("categories")
	require.True(t, ok)
	assert.JSONEq(t, `["Work"]`, raw)

	st.DeleteCategory("Work")
	raw, _, _ = store.Load("categories")
	assert.JSONEq(t, `[]`, raw)
}

func TestSessionRecordLifecycle(t *testing.T) {
	store := newFakeStore()
	st, err := New(store, nil)
	require.NoError(t, err)

	_, ok, _ := store.Load("user")
	assert.False(t, ok, "no session record before login")

	require.NoError(t, st.Login("ana@example.com", "secret"))
	raw, ok, _ := store.Load("user")
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"ana","email":"ana@example.com"}`, raw)

	require.NoError(t, st.Logout())
	_, ok, _ = store.Load("user")
	assert.False(t, ok, "logout deletes the record instead of blanking it")
}

func TestHydrateResumesIDSequence(t *testing.T) {
	store := newFakeStore()
	store.Save("tasks", `[{"id":9999999999999,"title":"old","priority":"medium","completed":false}]`)

	st, err := New(store, nil)
	require.NoError(t, err)

	task, ok, err := st.AddTask(models.TaskDraft{Title: "new"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Greater(t, task.ID, int64(9999999999999))
}
