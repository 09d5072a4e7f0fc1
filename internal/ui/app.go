package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mrivas/gestor/internal/state"
	"github.com/mrivas/gestor/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewAuth View = iota
	ViewBoard
)

type App struct {
	st          *state.State
	currentView View
	auth        *views.AuthView
	board       *views.BoardView
	width       int
	height      int
}

// Creates a new application
func NewApp(st *state.State) *App {
	a := &App{
		st:    st,
		auth:  views.NewAuthView(st),
		board: views.NewBoardView(st),
	}
	// A persisted session skips the auth form
	if st.Session() != nil {
		a.currentView = ViewBoard
	}
	return a
}

func (a *App) Init() tea.Cmd {
	if a.currentView == ViewAuth {
		return a.auth.Init()
	}
	return a.board.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Both views track the size; they persist across login cycles
		a.auth.Update(msg)
		a.board.Update(msg)
		return a, nil

	case views.LoggedIn:
		a.currentView = ViewBoard
		return a, a.board.Init()

	case views.LoggedOut:
		a.currentView = ViewAuth
		// Fresh form so the previous user's fields are not echoed back
		a.auth = views.NewAuthView(a.st)
		a.auth.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		return a, a.auth.Init()
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewAuth:
		_, cmd = a.auth.Update(msg)
	case ViewBoard:
		_, cmd = a.board.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	switch a.currentView {
	case ViewBoard:
		return a.board.View()
	}
	return a.auth.View()
}
