package state

import (
	"testing"

	"github.com/mrivas/gestor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibleStatusFilters(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Title: "a", Completed: false},
		{ID: 2, Title: "b", Completed: true},
		{ID: 3, Title: "c", Completed: false},
	}

	all := Visible(tasks, models.FilterAll, "")
	require.Len(t, all, 3)

	active := Visible(tasks, models.FilterActive, "")
	require.Len(t, active, 2)
	for _, task := range active {
		assert.False(t, task.Completed)
	}

	completed := Visible(tasks, models.FilterCompleted, "")
	require.Len(t, completed, 1)
	assert.Equal(t, int64(2), completed[0].ID)
}

func TestVisibleSearchTitleOrDescription(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Title: "Buy milk"},
		{ID: 2, Title: "errand", Description: "call Bob"},
	}

	byDesc := Visible(tasks, models.FilterAll, "BOB")
	require.Len(t, byDesc, 1)
	assert.Equal(t, int64(2), byDesc[0].ID)

	byTitle := Visible(tasks, models.FilterAll, "milk")
	require.Len(t, byTitle, 1)
	assert.Equal(t, int64(1), byTitle[0].ID)

	assert.Empty(t, Visible(tasks, models.FilterAll, "nothing matches"))
}

func TestVisibleStatusAndSearchCombined(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Title: "report draft", Completed: false},
		{ID: 2, Title: "report review", Completed: true},
		{ID: 3, Title: "groceries", Completed: false},
	}

	got := Visible(tasks, models.FilterActive, "report")
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestVisibleOrderPreserved(t *testing.T) {
	tasks := []models.Task{
		{ID: 3, Title: "x"},
		{ID: 1, Title: "x"},
		{ID: 2, Title: "x"},
	}

	got := Visible(tasks, models.FilterAll, "x")
	require.Len(t, got, 3)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
	assert.Equal(t, int64(2), got[2].ID)
}

func TestVisibleIsPure(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Title: "alpha", Completed: true},
		{ID: 2, Title: "beta", Description: "alpha adjacent"},
	}

	first := Visible(tasks, models.FilterAll, "alpha")
	second := Visible(tasks, models.FilterAll, "alpha")
	assert.Equal(t, first, second)

	// The input slice is untouched
	assert.Equal(t, int64(1), tasks[0].ID)
	assert.Len(t, tasks, 2)
}

func TestVisibleEmptyTermMatchesAll(t *testing.T) {
	tasks := []models.Task{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}
	assert.Len(t, Visible(tasks, models.FilterAll, ""), 2)
}
