package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrivas/gestor/internal/models"
	"github.com/mrivas/gestor/internal/state"
	"github.com/mrivas/gestor/internal/ui/keys"
	"github.com/mrivas/gestor/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// boardMode is the interaction mode of the board
type boardMode int

const (
	modeList boardMode = iota
	modeSearch
	modeAdding
	modeCategories
	modeConfirmDelete
)

var priorities = []models.Priority{
	models.PriorityLow,
	models.PriorityMedium,
	models.PriorityHigh,
}

// BoardView is the main task screen: new-task form, search, status filter,
// category manager and the task list.
type BoardView struct {
	st     *state.State
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	mode    boardMode
	visible []models.Task
	cursor  int
	scrollY int

	searchInput textinput.Model
	statusMsg   string

	// New-task form
	formTitle    textinput.Model
	formDue      textinput.Model
	formDesc     textarea.Model
	formPriority int // index into priorities
	formCategory int // index into the category set
	formFocusIdx int // 0=title, 1=due, 2=desc, 3=priority, 4=category, 5=save
	formErr      string

	// Category manager
	catInput  textinput.Model
	catCursor int

	// Delete confirmation
	deleteTargetID    int64
	deleteTargetTitle string
}

// NewBoardView creates the board bound to the state container. The board
// subscribes to state changes so the visible list is recomputed after every
// mutation, wherever it originated.
func NewBoardView(st *state.State) *BoardView {
	s := styles.NewStyles()

	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	formTitle := textinput.New()
	formTitle.Placeholder = "Task title"
	formTitle.CharLimit = 200

	formDue := textinput.New()
	formDue.Placeholder = "YYYY-MM-DD (optional)"
	formDue.CharLimit = 10

	formDesc := textarea.New()
	formDesc.Placeholder = "Description"
	formDesc.CharLimit = 1000
	formDesc.SetWidth(44)
	formDesc.SetHeight(3)
	formDesc.ShowLineNumbers = false

	catInput := textinput.New()
	catInput.Placeholder = "New category"
	catInput.CharLimit = 100

	v := &BoardView{
		st:          st,
		styles:      s,
		keys:        keys.DefaultKeyMap(),
		searchInput: search,
		formTitle:   formTitle,
		formDue:     formDue,
		formDesc:    formDesc,
		catInput:    catInput,
	}
	st.Subscribe(v.refresh)
	v.refresh()
	return v
}

func (v *BoardView) Init() tea.Cmd {
	return nil
}

// refresh recomputes the visible task list and keeps the cursor in range.
func (v *BoardView) refresh() {
	v.visible = v.st.VisibleTasks()
	if v.cursor >= len(v.visible) {
		v.cursor = max(0, len(v.visible)-1)
	}
	categories := v.st.Categories()
	if v.formCategory >= len(categories) {
		v.formCategory = max(0, len(categories)-1)
	}
	if v.catCursor >= len(categories) {
		v.catCursor = max(0, len(categories)-1)
	}
}

func (v *BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(v.width)
		v.formDesc.SetWidth(clamp(contentWidth-10, 20, 44))
		return v, nil

	case tea.KeyMsg:
		v.statusMsg = ""
		switch v.mode {
		case modeSearch:
			return v.updateSearch(msg)
		case modeAdding:
			return v.updateAdding(msg)
		case modeCategories:
			return v.updateCategories(msg)
		case modeConfirmDelete:
			return v.updateConfirmDelete(msg)
		}
		return v.updateList(msg)
	}
	return v, nil
}

func (v *BoardView) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Logout):
		v.st.Logout()
		return v, func() tea.Msg { return LoggedOut{} }

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.visible)-1 {
			v.cursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.openForm()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Search):
		v.mode = modeSearch
		v.searchInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Filter):
		v.cycleFilter()
		return v, nil

	case msg.String() == "1":
		v.st.SetStatusFilter(models.FilterAll)
		return v, nil
	case msg.String() == "2":
		v.st.SetStatusFilter(models.FilterActive)
		return v, nil
	case msg.String() == "3":
		v.st.SetStatusFilter(models.FilterCompleted)
		return v, nil

	case key.Matches(msg, v.keys.Categories):
		v.mode = modeCategories
		v.catInput.Reset()
		v.catInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Toggle), key.Matches(msg, v.keys.Enter):
		if v.cursor < len(v.visible) {
			v.st.ToggleComplete(v.visible[v.cursor].ID)
		}
		return v, nil

	case key.Matches(msg, v.keys.Copy):
		if v.cursor < len(v.visible) {
			t := v.visible[v.cursor]
			text := t.Title
			if t.Description != "" {
				text += "\n" + t.Description
			}
			if err := clipboard.WriteAll(text); err == nil {
				v.statusMsg = "copied to clipboard"
			}
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if v.cursor < len(v.visible) {
			v.mode = modeConfirmDelete
			v.deleteTargetID = v.visible[v.cursor].ID
			v.deleteTargetTitle = v.visible[v.cursor].Title
		}
		return v, nil
	}
	return v, nil
}

func (v *BoardView) cycleFilter() {
	switch v.st.StatusFilter() {
	case models.FilterAll:
		v.st.SetStatusFilter(models.FilterActive)
	case models.FilterActive:
		v.st.SetStatusFilter(models.FilterCompleted)
	default:
		v.st.SetStatusFilter(models.FilterAll)
	}
}

func (v *BoardView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter):
		v.mode = modeList
		v.searchInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.searchInput, cmd = v.searchInput.Update(msg)
	v.st.SetSearch(v.searchInput.Value())
	return v, cmd
}

// openForm resets the new-task form. The category select defaults to the
// first category, empty when the set is empty.
func (v *BoardView) openForm() {
	v.mode = modeAdding
	v.formTitle.Reset()
	v.formDue.Reset()
	v.formDesc.Reset()
	v.formPriority = 1 // medium
	v.formCategory = 0
	v.formFocusIdx = 0
	v.formErr = ""
	v.updateFormFocus()
}

func (v *BoardView) updateFormFocus() {
	v.formTitle.Blur()
	v.formDue.Blur()
	v.formDesc.Blur()
	switch v.formFocusIdx {
	case 0:
		v.formTitle.Focus()
	case 1:
		v.formDue.Focus()
	case 2:
		v.formDesc.Focus()
	}
}

func (v *BoardView) saveTask() bool {
	due := strings.TrimSpace(v.formDue.Value())
	if due != "" {
		if _, err := time.Parse("2006-01-02", due); err != nil {
			v.formErr = "due date must be YYYY-MM-DD"
			return false
		}
	}

	category := ""
	if categories := v.st.Categories(); len(categories) > 0 {
		category = categories[v.formCategory]
	}

	_, ok, _ := v.st.AddTask(models.TaskDraft{
		Title:       v.formTitle.Value(),
		Description: v.formDesc.Value(),
		DueDate:     due,
		Priority:    priorities[v.formPriority],
		Category:    category,
	})
	if !ok {
		v.formErr = "title is required"
		return false
	}
	v.mode = modeList
	return true
}

func (v *BoardView) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.mode = modeList
		return v, nil

	case msg.String() == "ctrl+s":
		v.saveTask()
		return v, nil

	case msg.String() == "shift+tab":
		v.formFocusIdx = (v.formFocusIdx + 5) % 6
		v.updateFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.formFocusIdx = (v.formFocusIdx + 1) % 6
		v.updateFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		// Enter advances through the fields; on the save button it saves.
		// The description textarea keeps enter for newlines.
		if v.formFocusIdx == 2 {
			break
		}
		if v.formFocusIdx < 5 {
			v.formFocusIdx++
			v.updateFormFocus()
			return v, nil
		}
		v.saveTask()
		return v, nil

	case msg.String() == "left":
		switch v.formFocusIdx {
		case 3:
			v.formPriority = (v.formPriority + 2) % 3
			return v, nil
		case 4:
			if n := len(v.st.Categories()); n > 0 {
				v.formCategory = (v.formCategory + n - 1) % n
			}
			return v, nil
		}

	case msg.String() == "right":
		switch v.formFocusIdx {
		case 3:
			v.formPriority = (v.formPriority + 1) % 3
			return v, nil
		case 4:
			if n := len(v.st.Categories()); n > 0 {
				v.formCategory = (v.formCategory + 1) % n
			}
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.formFocusIdx {
	case 0:
		v.formTitle, cmd = v.formTitle.Update(msg)
	case 1:
		v.formDue, cmd = v.formDue.Update(msg)
	case 2:
		v.formDesc, cmd = v.formDesc.Update(msg)
	}
	return v, cmd
}

func (v *BoardView) updateCategories(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.mode = modeList
		v.catInput.Blur()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		v.st.AddCategory(v.catInput.Value())
		v.catInput.Reset()
		return v, nil

	case msg.String() == "up":
		if v.catCursor > 0 {
			v.catCursor--
		}
		return v, nil

	case msg.String() == "down":
		if v.catCursor < len(v.st.Categories())-1 {
			v.catCursor++
		}
		return v, nil

	case msg.String() == "ctrl+d":
		if categories := v.st.Categories(); v.catCursor < len(categories) {
			v.st.DeleteCategory(categories[v.catCursor])
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.catInput, cmd = v.catInput.Update(msg)
	return v, cmd
}

func (v *BoardView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.st.DeleteTask(v.deleteTargetID)
		v.mode = modeList
		return v, nil
	case "n", "N", "esc":
		v.mode = modeList
		return v, nil
	}
	return v, nil
}

// View renders the view
func (v *BoardView) View() string {
	switch v.mode {
	case modeAdding:
		return v.renderForm()
	case modeCategories:
		return v.renderCategories()
	case modeConfirmDelete:
		return v.renderDeleteConfirm()
	}
	return v.renderList()
}

func (v *BoardView) renderHeader() string {
	s := v.styles
	name := ""
	if session := v.st.Session(); session != nil {
		name = session.Name
	}
	left := s.Title.Render("Gestor") + s.TitleMuted.Render("  welcome, "+name)
	right := s.TitleMuted.Render(fmt.Sprintf("filter: %s • %d shown", v.st.StatusFilter(), len(v.visible)))
	return lipgloss.JoinHorizontal(lipgloss.Center, left, "   ", right)
}

func (v *BoardView) renderSearchBar() string {
	s := v.styles
	style := s.Input
	if v.mode == modeSearch {
		style = s.InputFocused
	}
	contentWidth := styles.ContentWidth(v.width)
	return style.Width(clamp(contentWidth-4, 20, 60)).Render(v.searchInput.View())
}

func priorityMark(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return "!!!"
	case models.PriorityLow:
		return "!"
	}
	return "!!"
}

func (v *BoardView) renderTaskRow(t models.Task, selected bool) string {
	s := v.styles

	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	meta := priorityMark(t.Priority)
	if t.Category != "" {
		meta += " • " + t.Category
	}
	if t.DueDate != "" {
		meta += " • due " + t.DueDate
		if t.IsOverdue() {
			meta += " (overdue)"
		}
	}

	line := fmt.Sprintf("%s %s  %s", check, t.Title, s.TitleMuted.Render(meta))
	switch {
	case selected:
		return s.ListSelected.Render(line)
	case t.Completed:
		return s.ListDone.Render(line)
	default:
		return s.ListItem.Render(line)
	}
}

func (v *BoardView) renderList() string {
	s := v.styles

	rows := []string{v.renderHeader(), "", v.renderSearchBar(), ""}

	if len(v.visible) == 0 {
		rows = append(rows, s.TitleMuted.Render("  No tasks. Press 'n' to add one."))
	}

	// Simple viewport over the visible tasks
	maxRows := max(3, v.height-12)
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	}
	if v.cursor >= v.scrollY+maxRows {
		v.scrollY = v.cursor - maxRows + 1
	}
	end := min(v.scrollY+maxRows, len(v.visible))
	for i := v.scrollY; i < end; i++ {
		rows = append(rows, v.renderTaskRow(v.visible[i], i == v.cursor && v.mode == modeList))
	}

	if v.statusMsg != "" {
		rows = append(rows, "", s.StatusBar.Render(v.statusMsg))
	}
	rows = append(rows, v.renderHelp())

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return styles.CenterView(content, v.width, v.height)
}

func (v *BoardView) renderHelp() string {
	s := v.styles
	return s.Help.Render(
		fmt.Sprintf("%s new • %s search • %s filter • %s done • %s del • %s cats • %s copy • %s logout • %s quit",
			s.HelpKey.Render("n"),
			s.HelpKey.Render("/"),
			s.HelpKey.Render("f"),
			s.HelpKey.Render("space"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("c"),
			s.HelpKey.Render("y"),
			s.HelpKey.Render("ctrl+o"),
			s.HelpKey.Render("q"),
		),
	)
}

// renderSelect renders a left/right cycling picker row for the form.
func (v *BoardView) renderSelect(label string, options []string, idx int, focused bool) string {
	s := v.styles
	value := "(none)"
	if idx < len(options) {
		value = options[idx]
	}
	style := s.Input
	if focused {
		style = s.InputFocused
		value = "◂ " + value + " ▸"
	}
	return label + "\n" + style.Render(value)
}

func (v *BoardView) renderForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-10, 20, 44)

	titleStyle := s.Input
	dueStyle := s.Input
	descStyle := s.Input
	btnStyle := s.Button
	switch v.formFocusIdx {
	case 0:
		titleStyle = s.InputFocused
	case 1:
		dueStyle = s.InputFocused
	case 2:
		descStyle = s.InputFocused
	case 5:
		btnStyle = s.ButtonFocused
	}

	priorityNames := make([]string, len(priorities))
	for i, p := range priorities {
		priorityNames[i] = string(p)
	}

	rows := []string{
		s.Title.Render("New Task"),
		"",
	}
	if v.formErr != "" {
		rows = append(rows, s.ErrorBanner.Render(v.formErr), "")
	}
	rows = append(rows,
		"Title:",
		titleStyle.Width(inputWidth).Render(v.formTitle.View()),
		"",
		"Due date:",
		dueStyle.Width(inputWidth).Render(v.formDue.View()),
		"",
		"Description:",
		descStyle.Render(v.formDesc.View()),
		"",
		v.renderSelect("Priority:", priorityNames, v.formPriority, v.formFocusIdx == 3),
		"",
		v.renderSelect("Category:", v.st.Categories(), v.formCategory, v.formFocusIdx == 4),
		"",
		btnStyle.Render(" Add Task "),
		"",
		s.TitleMuted.Render("Tab: next • ←/→: choose • Ctrl+S: save • Esc: cancel"),
	)

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *BoardView) renderCategories() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-10, 20, 44)

	rows := []string{
		s.Title.Render("Categories"),
		"",
	}

	categories := v.st.Categories()
	if len(categories) == 0 {
		rows = append(rows, s.TitleMuted.Render("No categories yet"))
	}
	for i, c := range categories {
		if i == v.catCursor {
			rows = append(rows, s.ListSelected.Render(c))
		} else {
			rows = append(rows, s.ListItem.Render(c))
		}
	}

	rows = append(rows,
		"",
		s.InputFocused.Width(inputWidth).Render(v.catInput.View()),
		"",
		s.TitleMuted.Render("↵ add • ↑/↓ select • Ctrl+D delete • Esc close"),
	)

	panel := s.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		panel,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *BoardView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%q", v.deleteTargetTitle)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
