// ABOUTME: Admin user-creation form as a bubbletea model
// ABOUTME: Collects username and password; role and balance use fixed defaults

package adminform

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leavedesk/leavectl/internal/tui/icons"
	"github.com/leavedesk/leavectl/internal/tui/styles"
)

// CreateUserMsg is sent when the admin submits a new user. The role is
// always "user" and the starting balance zero; this form does not expose
// them.
type CreateUserMsg struct {
	Username string
	Password string
}

// CancelledMsg is sent when the form is cancelled.
type CancelledMsg struct{}

const (
	fieldUsername = iota
	fieldPassword
	fieldCount
)

// Form is the admin user-creation screen.
type Form struct {
	username textinput.Model
	password textinput.Model
	focus    int
	width    int
}

// New creates the user-creation form.
func New() *Form {
	username := textinput.New()
	username.Placeholder = "new username"
	username.CharLimit = 80
	username.Width = 32
	username.Focus()

	password := textinput.New()
	password.Placeholder = "initial password"
	password.CharLimit = 120
	password.Width = 32
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &Form{
		username: username,
		password: password,
	}
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		return f, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			f.setFocus((f.focus + 1) % fieldCount)
			return f, nil
		case "shift+tab", "up":
			f.setFocus((f.focus + fieldCount - 1) % fieldCount)
			return f, nil
		case "esc":
			return f, func() tea.Msg { return CancelledMsg{} }
		case "enter":
			username := strings.TrimSpace(f.username.Value())
			password := f.password.Value()
			return f, func() tea.Msg {
				return CreateUserMsg{Username: username, Password: password}
			}
		}
	}

	var cmd tea.Cmd
	if f.focus == fieldUsername {
		f.username, cmd = f.username.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return f, cmd
}

func (f *Form) setFocus(focus int) {
	f.focus = focus
	if focus == fieldUsername {
		f.username.Focus()
		f.password.Blur()
	} else {
		f.password.Focus()
		f.username.Blur()
	}
}

// View implements tea.Model
func (f *Form) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Admin.String() + " Create user"))
	sb.WriteString("\n\n")
	sb.WriteString("Username\n")
	sb.WriteString(f.username.View())
	sb.WriteString("\n\nPassword\n")
	sb.WriteString(f.password.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("enter create  esc cancel  tab switch field"))
	return sb.String()
}
