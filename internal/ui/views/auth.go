package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrivas/gestor/internal/state"
	"github.com/mrivas/gestor/internal/ui/keys"
	"github.com/mrivas/gestor/internal/ui/styles"
)

// AuthMode selects between the two entry forms
type AuthMode int

const (
	ModeLogin AuthMode = iota
	ModeRegister
)

// LoggedIn signals that a session was established
type LoggedIn struct{}

// LoggedOut signals that the session ended
type LoggedOut struct{}

// AuthView is the simulated login/register form shown while no session
// exists. It never talks to anything but the state container.
type AuthView struct {
	st     *state.State
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	mode     AuthMode
	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	confirm  textinput.Model
	focusIdx int
	errMsg   string
}

// NewAuthView creates the auth form in login mode
func NewAuthView(st *state.State) *AuthView {
	s := styles.NewStyles()

	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 100

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 200
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 200
	password.EchoMode = textinput.EchoPassword

	confirm := textinput.New()
	confirm.Placeholder = "Confirm password"
	confirm.CharLimit = 200
	confirm.EchoMode = textinput.EchoPassword

	return &AuthView{
		st:       st,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		name:     name,
		email:    email,
		password: password,
		confirm:  confirm,
	}
}

func (v *AuthView) Init() tea.Cmd {
	return textinput.Blink
}

// fields returns the focusable inputs for the active mode; the last focus
// index is the submit button.
func (v *AuthView) fields() []*textinput.Model {
	if v.mode == ModeLogin {
		return []*textinput.Model{&v.email, &v.password}
	}
	return []*textinput.Model{&v.name, &v.email, &v.password, &v.confirm}
}

func (v *AuthView) updateFocus() {
	fields := v.fields()
	for i, f := range fields {
		if i == v.focusIdx {
			f.Focus()
		} else {
			f.Blur()
		}
	}
}

func (v *AuthView) switchMode() {
	if v.mode == ModeLogin {
		v.mode = ModeRegister
	} else {
		v.mode = ModeLogin
	}
	// Switching tabs clears the error, same as the field values stay
	v.errMsg = ""
	v.focusIdx = 0
	v.updateFocus()
}

func (v *AuthView) submit() tea.Cmd {
	var err error
	if v.mode == ModeLogin {
		err = v.st.Login(v.email.Value(), v.password.Value())
	} else {
		err = v.st.Register(v.name.Value(), v.email.Value(), v.password.Value(), v.confirm.Value())
	}
	if err != nil {
		v.errMsg = err.Error()
		return nil
	}
	v.errMsg = ""
	return func() tea.Msg { return LoggedIn{} }
}

func (v *AuthView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		switch {
		case msg.String() == "ctrl+c":
			return v, tea.Quit

		case msg.String() == "ctrl+t":
			v.switchMode()
			return v, nil

		case msg.String() == "ctrl+s":
			return v, v.submit()

		case msg.String() == "shift+tab":
			n := len(v.fields()) + 1
			v.focusIdx = (v.focusIdx + n - 1) % n
			v.updateFocus()
			return v, nil

		case key.Matches(msg, v.keys.Tab):
			v.focusIdx = (v.focusIdx + 1) % (len(v.fields()) + 1)
			v.updateFocus()
			return v, nil

		case key.Matches(msg, v.keys.Enter):
			if v.focusIdx < len(v.fields()) {
				v.focusIdx++
				v.updateFocus()
				return v, nil
			}
			return v, v.submit()
		}
	}

	fields := v.fields()
	if v.focusIdx < len(fields) {
		var cmd tea.Cmd
		*fields[v.focusIdx], cmd = fields[v.focusIdx].Update(msg)
		return v, cmd
	}
	return v, nil
}

// View renders the view
func (v *AuthView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-10, 20, 44)

	loginTab := s.Button.Render(" Log in ")
	registerTab := s.Button.Render(" Register ")
	if v.mode == ModeLogin {
		loginTab = s.ButtonPrimary.Render(" Log in ")
	} else {
		registerTab = s.ButtonPrimary.Render(" Register ")
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Center, loginTab, "  ", registerTab)

	rows := []string{
		s.Title.Render("Gestor de Tareas"),
		"",
		tabs,
		"",
	}

	if v.errMsg != "" {
		rows = append(rows, s.ErrorBanner.Width(inputWidth).Render(v.errMsg), "")
	}

	labels := []string{"Email:", "Password:"}
	if v.mode == ModeRegister {
		labels = []string{"Name:", "Email:", "Password:", "Confirm password:"}
	}
	for i, f := range v.fields() {
		style := s.Input
		if i == v.focusIdx {
			style = s.InputFocused
		}
		rows = append(rows, labels[i], style.Width(inputWidth).Render(f.View()))
	}

	submit := s.Button
	if v.focusIdx == len(v.fields()) {
		submit = s.ButtonFocused
	}
	label := " Log in "
	if v.mode == ModeRegister {
		label = " Register "
	}
	rows = append(rows,
		"",
		submit.Render(label),
		"",
		s.TitleMuted.Render(strings.Join([]string{
			s.HelpKey.Render("tab") + " next",
			s.HelpKey.Render("ctrl+t") + " switch form",
			s.HelpKey.Render("↵") + " submit",
		}, " • ")),
	)

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}
