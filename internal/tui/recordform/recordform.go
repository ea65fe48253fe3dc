// ABOUTME: Leave record entry form as a bubbletea model
// ABOUTME: huh form collecting type, dates, half-day markers, minutes, and note

package recordform

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/leavedesk/leavectl/internal/client"
	"github.com/leavedesk/leavectl/internal/tui/styles"
)

// CompleteMsg is sent when the form finishes with a composed record.
type CompleteMsg struct {
	Input *client.LeaveRecordInput
}

// CancelledMsg is sent when the form is cancelled.
type CancelledMsg struct{}

// Form collects a leave record before submission. Field values live as
// strings for huh; the record payload is composed once on completion and
// not retained afterward.
type Form struct {
	form  *huh.Form
	width int

	recordType string
	startDate  string
	endDate    string
	startHalf  string
	endHalf    string
	minutes    string
	note       string
}

var typeOptions = []huh.Option[string]{
	huh.NewOption("Full day", client.RecordFullDay),
	huh.NewOption("Half day (AM)", client.RecordHalfAM),
	huh.NewOption("Half day (PM)", client.RecordHalfPM),
	huh.NewOption("Date range", client.RecordRange),
	huh.NewOption("Late arrival", client.RecordLate),
	huh.NewOption("Early leave", client.RecordEarly),
}

var halfOptions = []huh.Option[string]{
	huh.NewOption("AM", "AM"),
	huh.NewOption("PM", "PM"),
}

// createTheme returns a huh theme using the shared palette.
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(styles.Muted).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(styles.Danger).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Danger)

	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(styles.Primary).
		SetString("> ")
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Primary)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(styles.Muted)

	return t
}

// New creates a record entry form with full-day defaults.
func New() *Form {
	f := &Form{
		recordType: client.RecordFullDay,
		startHalf:  "AM",
		endHalf:    "PM",
	}
	f.form = f.createForm()
	return f
}

func (f *Form) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Record type").
				Options(typeOptions...).
				Value(&f.recordType),
			huh.NewInput().
				Title("Start date").
				Placeholder("YYYY-MM-DD").
				CharLimit(10).
				Value(&f.startDate),
			huh.NewInput().
				Title("End date").
				Placeholder("YYYY-MM-DD").
				CharLimit(10).
				Value(&f.endDate),
			huh.NewSelect[string]().
				Title("Start half").
				Options(halfOptions...).
				Value(&f.startHalf),
			huh.NewSelect[string]().
				Title("End half").
				Options(halfOptions...).
				Value(&f.endHalf),
			huh.NewInput().
				Title("Minutes").
				Description("Only for late arrival / early leave").
				CharLimit(5).
				Value(&f.minutes),
			huh.NewInput().
				Title("Note").
				CharLimit(200).
				Value(&f.note),
		).Title("New leave record").
			Description("Dates may stay empty; the backend validates per record type"),
	).WithTheme(createTheme())
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		form, cmd := f.form.Update(msg)
		if m, ok := form.(*huh.Form); ok {
			f.form = m
		}
		return f, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return f, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := f.form.Update(msg)
	if m, ok := form.(*huh.Form); ok {
		f.form = m
	}

	if f.form.State == huh.StateCompleted {
		input := f.compose()
		return f, func() tea.Msg {
			return CompleteMsg{Input: input}
		}
	}

	return f, cmd
}

// compose builds the submission payload. Dates become midnight timestamps,
// empty optional fields stay null.
func (f *Form) compose() *client.LeaveRecordInput {
	input := &client.LeaveRecordInput{
		RecordType: f.recordType,
		StartDate:  client.MidnightTimestamp(f.startDate),
		EndDate:    client.MidnightTimestamp(f.endDate),
		StartHalf:  f.startHalf,
		EndHalf:    f.endHalf,
	}
	if v := strings.TrimSpace(f.minutes); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			input.Minutes = &n
		}
	}
	if note := strings.TrimSpace(f.note); note != "" {
		input.Note = &note
	}
	return input
}

// View implements tea.Model
func (f *Form) View() string {
	return f.form.View()
}
