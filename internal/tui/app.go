// ABOUTME: Root bubbletea model for the leavectl TUI
// ABOUTME: Routes screens, drives auth and refresh flows, gates admin panes by role

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leavedesk/leavectl/internal/client"
	"github.com/leavedesk/leavectl/internal/session"
	"github.com/leavedesk/leavectl/internal/tui/adminform"
	"github.com/leavedesk/leavectl/internal/tui/debuglog"
	"github.com/leavedesk/leavectl/internal/tui/icons"
	"github.com/leavedesk/leavectl/internal/tui/login"
	"github.com/leavedesk/leavectl/internal/tui/recordform"
	"github.com/leavedesk/leavectl/internal/tui/styles"
	"github.com/leavedesk/leavectl/internal/tui/views"
	"github.com/leavedesk/leavectl/internal/tui/widgets"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenHome
	ScreenRecordForm
	ScreenUserForm
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// profileLoadedMsg is sent after fetching /auth/me
type profileLoadedMsg struct {
	user      *client.User
	err       error
	restoring bool
}

// authResultMsg is sent after a login or registration attempt
type authResultMsg struct {
	token string
	err   error
}

// balanceLoadedMsg carries a balance refresh result
type balanceLoadedMsg struct {
	balance float64
	err     error
}

// myRecordsLoadedMsg carries a personal record list refresh result
type myRecordsLoadedMsg struct {
	page *client.RecordPage
	err  error
}

// usersLoadedMsg carries an admin user list refresh result
type usersLoadedMsg struct {
	users []client.User
	err   error
}

// allRecordsLoadedMsg carries an admin all-records refresh result
type allRecordsLoadedMsg struct {
	page *client.RecordPage
	err  error
}

// recordSavedMsg is sent when a leave record submission settles
type recordSavedMsg struct {
	err error
}

// userCreatedMsg is sent when an admin user creation settles
type userCreatedMsg struct {
	err error
}

// App is the root model for the TUI
type App struct {
	client   *client.Client
	session  *session.Session
	pageSize int
	screen   Screen
	width    int
	height   int

	// Child models
	loginScreen  *login.Login
	recordScreen *recordform.Form
	userScreen   *adminform.Form

	// Fetched collections, replaced wholesale on every refresh.
	// Each view keeps its own error so one failed refresh never
	// blocks or rolls back the others.
	balance       float64
	balanceLoaded bool
	balanceErr    error
	myRecords     *client.RecordPage
	myRecordsErr  error
	users         []client.User
	usersErr      error
	allRecords    *client.RecordPage
	allRecordsErr error

	createStatus string // record entry flow status line
	adminStatus  string // admin pane status line
	lastUpdate   time.Time
}

// New creates a new TUI application
func New(apiClient *client.Client, sess *session.Session, pageSize int) *App {
	return &App{
		client:      apiClient,
		session:     sess,
		pageSize:    pageSize,
		screen:      ScreenLogin,
		loginScreen: login.New(),
	}
}

// Init implements tea.Model. A persisted token triggers silent
// restoration; without one the login screen shows immediately.
func (a *App) Init() tea.Cmd {
	if a.session.Restore() {
		return a.fetchProfile(true)
	}
	return a.loginScreen.Init()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.loginScreen != nil {
			a.loginScreen.Update(msg)
		}
		if a.userScreen != nil {
			a.userScreen.Update(msg)
		}
		if a.recordScreen != nil {
			return a.updateRecordForm(msg)
		}
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Route to current screen
		switch a.screen {
		case ScreenLogin:
			return a.updateLogin(msg)
		case ScreenHome:
			return a.updateHome(msg)
		case ScreenRecordForm:
			return a.updateRecordForm(msg)
		case ScreenUserForm:
			return a.updateUserForm(msg)
		}

	case login.SubmitMsg:
		return a, a.authenticate(msg)

	case authResultMsg:
		return a.handleAuthResult(msg)

	case profileLoadedMsg:
		return a.handleProfileLoaded(msg)

	case balanceLoadedMsg:
		a.balance = msg.balance
		a.balanceLoaded = msg.err == nil
		a.balanceErr = msg.err
		a.lastUpdate = time.Now()
		return a, nil

	case myRecordsLoadedMsg:
		if msg.err == nil {
			a.myRecords = msg.page
		}
		a.myRecordsErr = msg.err
		a.lastUpdate = time.Now()
		return a, nil

	case usersLoadedMsg:
		if msg.err == nil {
			a.users = msg.users
		}
		a.usersErr = msg.err
		return a, nil

	case allRecordsLoadedMsg:
		if msg.err == nil {
			a.allRecords = msg.page
		}
		a.allRecordsErr = msg.err
		return a, nil

	case recordform.CompleteMsg:
		a.recordScreen = nil
		a.screen = ScreenHome
		a.createStatus = "Saving..."
		return a, a.saveRecord(msg.Input)

	case recordform.CancelledMsg:
		a.recordScreen = nil
		a.screen = ScreenHome
		return a, nil

	case recordSavedMsg:
		return a.handleRecordSaved(msg)

	case adminform.CreateUserMsg:
		a.userScreen = nil
		a.screen = ScreenHome
		a.adminStatus = "Creating..."
		return a, a.createUser(msg)

	case adminform.CancelledMsg:
		a.userScreen = nil
		a.screen = ScreenHome
		return a, nil

	case userCreatedMsg:
		if msg.err != nil {
			a.adminStatus = msg.err.Error()
			return a, nil
		}
		a.adminStatus = "User created"
		return a, a.fetchUsers()

	default:
		// Forward unknown messages to the record form when active
		// (needed for huh form internals)
		if a.screen == ScreenRecordForm && a.recordScreen != nil {
			return a.updateRecordForm(msg)
		}
	}

	return a, nil
}

func (a *App) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.loginScreen == nil {
		return a, nil
	}
	model, cmd := a.loginScreen.Update(msg)
	a.loginScreen = model.(*login.Login)
	return a, cmd
}

func (a *App) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "r":
		return a, a.loadAll()
	case "n":
		a.recordScreen = recordform.New()
		a.screen = ScreenRecordForm
		return a, a.recordScreen.Init()
	case "u":
		if a.session.IsAdmin() {
			a.userScreen = adminform.New()
			a.screen = ScreenUserForm
			return a, a.userScreen.Init()
		}
	case "x":
		return a.logout()
	}
	return a, nil
}

func (a *App) updateRecordForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.recordScreen == nil {
		return a, nil
	}
	model, cmd := a.recordScreen.Update(msg)
	a.recordScreen = model.(*recordform.Form)
	return a, cmd
}

func (a *App) updateUserForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.userScreen == nil {
		return a, nil
	}
	model, cmd := a.userScreen.Update(msg)
	a.userScreen = model.(*adminform.Form)
	return a, cmd
}

// authenticate calls the auth endpoint for the submitted mode. The
// session is only touched after a successful response.
func (a *App) authenticate(msg login.SubmitMsg) tea.Cmd {
	return func() tea.Msg {
		var (
			token *client.TokenResponse
			err   error
		)
		if msg.Mode == login.ModeRegister {
			token, err = a.client.Register(context.Background(), msg.Username, msg.Password)
		} else {
			token, err = a.client.Login(context.Background(), msg.Username, msg.Password)
		}
		if err != nil {
			return authResultMsg{err: err}
		}
		return authResultMsg{token: token.AccessToken}
	}
}

func (a *App) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if a.loginScreen != nil {
			a.loginScreen.SetStatus(msg.err.Error())
		}
		return a, nil
	}
	if err := a.session.SetToken(msg.token); err != nil {
		// Token persists in memory for this run even if the file write failed
		debuglog.Error("persist token", err)
	}
	return a, a.fetchProfile(false)
}

func (a *App) handleProfileLoaded(msg profileLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if msg.restoring {
			// Silent restoration failure: drop the stale token and show
			// the login screen without surfacing an error
			debuglog.Error("restore session", msg.err)
			if err := a.session.Clear(); err != nil {
				debuglog.Error("clear session", err)
			}
			a.screen = ScreenLogin
			return a, a.loginScreen.Init()
		}
		if a.loginScreen != nil {
			a.loginScreen.SetStatus(msg.err.Error())
		}
		return a, nil
	}

	a.session.SetUser(msg.user)
	a.screen = ScreenHome
	a.lastUpdate = time.Now()
	return a, a.loadAll()
}

func (a *App) handleRecordSaved(msg recordSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Submission failed: show the backend's text, skip the refreshes
		a.createStatus = msg.err.Error()
		return a, nil
	}
	a.createStatus = "Saved"
	return a, tea.Batch(a.fetchBalance(), a.fetchMyRecords(), a.fetchAllRecords())
}

// logout clears the durable token and resets every screen and fetched
// collection to the initial state.
func (a *App) logout() (tea.Model, tea.Cmd) {
	if err := a.session.Clear(); err != nil {
		debuglog.Error("logout", err)
	}
	a.screen = ScreenLogin
	a.loginScreen = login.New()
	a.recordScreen = nil
	a.userScreen = nil
	a.balance = 0
	a.balanceLoaded = false
	a.balanceErr = nil
	a.myRecords = nil
	a.myRecordsErr = nil
	a.users = nil
	a.usersErr = nil
	a.allRecords = nil
	a.allRecordsErr = nil
	a.createStatus = ""
	a.adminStatus = ""
	a.lastUpdate = time.Time{}
	return a, a.loginScreen.Init()
}

// fetchProfile fetches /auth/me for the current token.
func (a *App) fetchProfile(restoring bool) tea.Cmd {
	return func() tea.Msg {
		user, err := a.client.Me(context.Background())
		return profileLoadedMsg{user: user, err: err, restoring: restoring}
	}
}

// loadAll issues the full fan-out: balance, personal records, and the
// admin views. All requests go out together; each settles on its own.
func (a *App) loadAll() tea.Cmd {
	return tea.Batch(a.fetchBalance(), a.fetchMyRecords(), a.fetchUsers(), a.fetchAllRecords())
}

func (a *App) fetchBalance() tea.Cmd {
	return func() tea.Msg {
		resp, err := a.client.Balance(context.Background())
		if err != nil {
			return balanceLoadedMsg{err: err}
		}
		return balanceLoadedMsg{balance: resp.LeaveBalance}
	}
}

func (a *App) fetchMyRecords() tea.Cmd {
	return func() tea.Msg {
		page, err := a.client.MyRecords(context.Background(), 1, a.pageSize)
		return myRecordsLoadedMsg{page: page, err: err}
	}
}

// fetchUsers refreshes the admin user list. The role gate is checked at
// refresh time, never cached.
func (a *App) fetchUsers() tea.Cmd {
	return func() tea.Msg {
		if !a.session.IsAdmin() {
			return nil
		}
		users, err := a.client.Users(context.Background())
		return usersLoadedMsg{users: users, err: err}
	}
}

// fetchAllRecords refreshes the admin all-records list, gated like fetchUsers.
func (a *App) fetchAllRecords() tea.Cmd {
	return func() tea.Msg {
		if !a.session.IsAdmin() {
			return nil
		}
		page, err := a.client.AllRecords(context.Background(), 1, a.pageSize)
		return allRecordsLoadedMsg{page: page, err: err}
	}
}

func (a *App) saveRecord(input *client.LeaveRecordInput) tea.Cmd {
	return func() tea.Msg {
		_, err := a.client.CreateRecord(context.Background(), input)
		return recordSavedMsg{err: err}
	}
}

func (a *App) createUser(msg adminform.CreateUserMsg) tea.Cmd {
	return func() tea.Msg {
		input := &client.CreateUserInput{
			Username:     msg.Username,
			Password:     msg.Password,
			Role:         "user",
			LeaveBalance: 0,
		}
		_, err := a.client.CreateUser(context.Background(), input)
		return userCreatedMsg{err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLogin:
		content = a.viewLogin()
	case ScreenHome:
		content = a.viewHome()
	case ScreenRecordForm:
		content = a.viewRecordForm()
	case ScreenUserForm:
		content = a.viewUserForm()
	default:
		content = a.viewLogin()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewLogin() string {
	if a.loginScreen != nil {
		return a.loginScreen.View()
	}
	return ""
}

func (a *App) viewRecordForm() string {
	if a.recordScreen != nil {
		return a.recordScreen.View()
	}
	return ""
}

func (a *App) viewUserForm() string {
	if a.userScreen != nil {
		return a.userScreen.View()
	}
	return ""
}

// viewHome renders the personal pane and, for admins, the admin pane
func (a *App) viewHome() string {
	leftPane := styles.ActivePanel.Width(a.leftWidth()).Render(a.renderPersonal())

	// The role gate runs at render time on live session state
	if a.session.IsAdmin() {
		rightPane := styles.Panel.Width(a.rightWidth()).Render(a.renderAdmin())
		return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
	}

	rightContent := styles.Title.Render(icons.Settings.String()+" Actions") + "\n\n"
	rightContent += icons.Refresh.String() + " Refresh data\n"
	rightContent += icons.NewItem.String() + " New leave record\n"
	rightContent += icons.Logout.String() + " Log out\n"
	rightContent += icons.Quit.String() + " Quit application\n"
	rightPane := styles.Panel.Width(a.rightWidth()).Render(rightContent)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

// renderPersonal renders balance, record entry status, and the personal list
func (a *App) renderPersonal() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Balance.String() + " Leave"))
	sb.WriteString("\n")

	switch {
	case a.balanceErr != nil:
		sb.WriteString(styles.StatusError.Render(a.balanceErr.Error()))
	case a.balanceLoaded:
		sb.WriteString(views.RenderBalance(a.balance))
	default:
		sb.WriteString(styles.Subtitle.Render("Loading..."))
	}
	sb.WriteString("\n\n")

	if a.createStatus != "" {
		if a.createStatus == "Saved" || a.createStatus == "Saving..." {
			sb.WriteString(widgets.StatusText(a.createStatus, widgets.StatusOK))
		} else {
			sb.WriteString(widgets.StatusText(a.createStatus, widgets.StatusCritical))
		}
		sb.WriteString("\n\n")
	}

	sb.WriteString(styles.Subtitle.Render("My records"))
	sb.WriteString("\n")
	switch {
	case a.myRecordsErr != nil:
		sb.WriteString(styles.StatusError.Render(a.myRecordsErr.Error()))
	case a.myRecords != nil:
		sb.WriteString(views.RenderRecords(a.myRecords.Items))
	default:
		sb.WriteString(styles.Subtitle.Render("Loading..."))
	}

	return sb.String()
}

// renderAdmin renders the admin-only user list and all-records list
func (a *App) renderAdmin() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Admin.String() + " Admin"))
	sb.WriteString("\n")

	if a.adminStatus != "" {
		if a.adminStatus == "User created" || a.adminStatus == "Creating..." {
			sb.WriteString(widgets.StatusText(a.adminStatus, widgets.StatusOK))
		} else {
			sb.WriteString(widgets.StatusText(a.adminStatus, widgets.StatusCritical))
		}
		sb.WriteString("\n\n")
	}

	sb.WriteString(styles.Subtitle.Render("Users"))
	sb.WriteString("\n")
	if a.usersErr != nil {
		sb.WriteString(styles.StatusError.Render(a.usersErr.Error()))
	} else {
		sb.WriteString(views.RenderUsers(a.users))
	}
	sb.WriteString("\n\n")

	sb.WriteString(styles.Subtitle.Render("All records"))
	sb.WriteString("\n")
	switch {
	case a.allRecordsErr != nil:
		sb.WriteString(styles.StatusError.Render(a.allRecordsErr.Error()))
	case a.allRecords != nil:
		sb.WriteString(views.RenderRecords(a.allRecords.Items))
	default:
		sb.WriteString(styles.Subtitle.Render("Loading..."))
	}

	return sb.String()
}

// leftWidth calculates the width for the personal pane
func (a *App) leftWidth() int {
	if a.width < minTerminalWidth {
		return a.width - panelPadding
	}
	return (a.width - panelPadding) / 2
}

// rightWidth calculates the width for the admin/actions pane
func (a *App) rightWidth() int {
	return a.width - a.leftWidth() - 4
}

// renderHeader creates the header bar with app branding and session context
func (a *App) renderHeader() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("LeaveDesk"))

	rightText := ""
	if user := a.session.User(); user != nil && a.screen != ScreenLogin {
		rightText = fmt.Sprintf("%s %s ", user.Username, widgets.RoleBadge(user.Role))
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenLogin:
		shortcuts = []string{"Enter Login", "Ctrl+r Register", "Ctrl+c Quit"}
	case ScreenHome:
		if a.session.IsAdmin() {
			shortcuts = []string{"r Refresh", "n New record", "u New user", "x Logout", "q Quit"}
		} else {
			shortcuts = []string{"r Refresh", "n New record", "x Logout", "q Quit"}
		}
	case ScreenRecordForm, ScreenUserForm:
		shortcuts = []string{"Enter Confirm", "Esc Cancel"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && a.screen == ScreenHome {
		elapsed := formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = "Updated " + elapsed + " "
	}

	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"
	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := int(d.Hours())
	if hours == 1 {
		return "1h ago"
	}
	return fmt.Sprintf("%dh ago", hours)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(apiClient *client.Client, sess *session.Session, pageSize int) error {
	app := New(apiClient, sess, pageSize)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
