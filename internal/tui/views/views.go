// ABOUTME: Projection functions turning fetched API collections into display text
// ABOUTME: Each renderer replaces its region wholesale; backend ordering is preserved

package views

import (
	"strconv"
	"strings"

	"github.com/leavedesk/leavectl/internal/client"
	"github.com/leavedesk/leavectl/internal/tui/styles"
	"github.com/leavedesk/leavectl/internal/tui/widgets"
)

// FormatNumber renders a balance or day count the way the backend sent it,
// without trailing zeros (7.5 stays "7.5", 3 stays "3").
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// FormatBalance renders the balance line.
func FormatBalance(balance float64) string {
	return "Balance: " + FormatNumber(balance)
}

// RecordLine renders the headline for one leave record.
func RecordLine(r *client.LeaveRecord) string {
	return r.RecordType + " - " + FormatNumber(r.TotalLeaveDays) + " day(s)"
}

// RecordDetail renders the secondary line: date portion plus optional note.
func RecordDetail(r *client.LeaveRecord) string {
	detail := r.StartDate()
	if r.Note != nil && *r.Note != "" {
		detail += " " + *r.Note
	}
	return detail
}

// UserLine renders one entry of the admin user list.
func UserLine(u *client.User) string {
	return u.Username + " - " + u.Role + " - balance " + FormatNumber(u.LeaveBalance)
}

// RenderBalance renders the styled balance region.
func RenderBalance(balance float64) string {
	return styles.ValueStyle.Render(FormatBalance(balance))
}

// RenderRecords renders a record list region. Items appear in the order
// the backend returned them.
func RenderRecords(items []client.LeaveRecord) string {
	if len(items) == 0 {
		return styles.Subtitle.Render("No records")
	}

	var sb strings.Builder
	for i := range items {
		r := &items[i]
		sb.WriteString(styles.ValueStyle.Render(RecordLine(r)))
		sb.WriteString("\n  " + styles.Subtitle.Render(RecordDetail(r)))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// RenderUsers renders the admin user list region.
func RenderUsers(users []client.User) string {
	if len(users) == 0 {
		return styles.Subtitle.Render("No users")
	}

	var sb strings.Builder
	for i := range users {
		u := &users[i]
		sb.WriteString(UserLine(u))
		sb.WriteString(" " + widgets.ActiveBadge(u.IsActive))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
