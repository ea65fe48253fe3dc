// ABOUTME: Login and registration screen for the TUI
// ABOUTME: Two text inputs plus a status line showing backend errors verbatim

package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leavedesk/leavectl/internal/tui/icons"
	"github.com/leavedesk/leavectl/internal/tui/styles"
)

// Mode selects which auth endpoint a submission targets.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// String returns the endpoint-ish name of the mode.
func (m Mode) String() string {
	if m == ModeRegister {
		return "register"
	}
	return "login"
}

// SubmitMsg is sent when the user submits credentials.
type SubmitMsg struct {
	Mode     Mode
	Username string
	Password string
}

const (
	fieldUsername = iota
	fieldPassword
	fieldCount
)

// Login is the credential entry screen.
type Login struct {
	username textinput.Model
	password textinput.Model
	focus    int
	status   string
	width    int
}

// New creates the login screen with the username field focused.
func New() *Login {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 80
	username.Width = 32
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.Width = 32
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &Login{
		username: username,
		password: password,
	}
}

// SetStatus shows a flow error in the screen's status line. Inputs keep
// their values so the user can correct and resubmit.
func (l *Login) SetStatus(status string) {
	l.status = status
}

// Status returns the current status line text.
func (l *Login) Status() string {
	return l.status
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width
		return l, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			l.setFocus((l.focus + 1) % fieldCount)
			return l, nil
		case "shift+tab", "up":
			l.setFocus((l.focus + fieldCount - 1) % fieldCount)
			return l, nil
		case "enter":
			return l, l.submit(ModeLogin)
		case "ctrl+r":
			return l, l.submit(ModeRegister)
		}
	}

	var cmd tea.Cmd
	if l.focus == fieldUsername {
		l.username, cmd = l.username.Update(msg)
	} else {
		l.password, cmd = l.password.Update(msg)
	}
	return l, cmd
}

func (l *Login) setFocus(focus int) {
	l.focus = focus
	if focus == fieldUsername {
		l.username.Focus()
		l.password.Blur()
	} else {
		l.password.Focus()
		l.username.Blur()
	}
}

// submit emits a SubmitMsg. Leading and trailing whitespace is trimmed
// from the username; the password goes through untouched.
func (l *Login) submit(mode Mode) tea.Cmd {
	username := strings.TrimSpace(l.username.Value())
	password := l.password.Value()
	return func() tea.Msg {
		return SubmitMsg{Mode: mode, Username: username, Password: password}
	}
}

// View implements tea.Model
func (l *Login) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Login.String() + " Sign in"))
	sb.WriteString("\n\n")
	sb.WriteString("Username\n")
	sb.WriteString(l.username.View())
	sb.WriteString("\n\nPassword\n")
	sb.WriteString(l.password.View())
	sb.WriteString("\n")

	if l.status != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusError.Render(l.status))
		sb.WriteString("\n")
	}

	sb.WriteString(styles.Help.Render("enter login  ctrl+r register  tab switch field"))
	return sb.String()
}
