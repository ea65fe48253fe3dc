// ABOUTME: Request and response schemas for the leave-management API
// ABOUTME: One typed struct per endpoint payload, decoded at the client boundary

package client

// TokenResponse is returned by /auth/login and /auth/register.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// Credentials is the body for login and registration.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordInput is the body for /auth/change-password.
type ChangePasswordInput struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// User is an account as returned by /auth/me and the admin endpoints.
type User struct {
	ID           int     `json:"id"`
	Username     string  `json:"username"`
	Role         string  `json:"role"`
	LeaveBalance float64 `json:"leave_balance"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}

// BalanceResponse is returned by /leave/balance.
type BalanceResponse struct {
	LeaveBalance float64 `json:"leave_balance"`
}

// Leave record types accepted by the backend.
const (
	RecordFullDay = "FULL_DAY"
	RecordHalfAM  = "HALF_AM"
	RecordHalfPM  = "HALF_PM"
	RecordRange   = "RANGE"
	RecordLate    = "LATE"
	RecordEarly   = "EARLY"
)

// LeaveRecordInput is the body for creating a leave record. Absent dates
// stay null rather than defaulting to any date; the backend decides what
// each record type requires.
type LeaveRecordInput struct {
	RecordType string  `json:"record_type"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	StartHalf  string  `json:"start_half"`
	EndHalf    string  `json:"end_half"`
	Minutes    *int    `json:"minutes"`
	Note       *string `json:"note"`
}

// LeaveRecordUpdate is the body for updating an existing record. Nil
// fields keep their stored values.
type LeaveRecordUpdate struct {
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	StartHalf *string `json:"start_half,omitempty"`
	EndHalf   *string `json:"end_half,omitempty"`
	Minutes   *int    `json:"minutes,omitempty"`
	Note      *string `json:"note,omitempty"`
}

// LeaveRecord is a stored leave record as returned by the backend.
// Timestamps stay as ISO strings; rendering only ever needs the date
// portion and the API carries no zone information.
type LeaveRecord struct {
	ID             int     `json:"id"`
	UserID         int     `json:"user_id"`
	RecordType     string  `json:"record_type"`
	StartDatetime  string  `json:"start_datetime"`
	EndDatetime    string  `json:"end_datetime"`
	TotalLeaveDays float64 `json:"total_leave_days"`
	Minutes        *int    `json:"minutes"`
	Note           *string `json:"note"`
	CreatedAt      string  `json:"created_at,omitempty"`
	UpdatedAt      string  `json:"updated_at,omitempty"`
}

// StartDate returns the date portion of the record's start timestamp.
func (r *LeaveRecord) StartDate() string {
	if len(r.StartDatetime) < 10 {
		return r.StartDatetime
	}
	return r.StartDatetime[:10]
}

// RecordPage is a paginated listing of leave records.
type RecordPage struct {
	Items    []LeaveRecord `json:"items"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// CreateUserInput is the body for the admin user-creation endpoint.
type CreateUserInput struct {
	Username     string  `json:"username"`
	Password     string  `json:"password"`
	Role         string  `json:"role"`
	LeaveBalance float64 `json:"leave_balance"`
}

// PatchUserInput is the body for the admin user-update endpoint. Nil
// fields keep their stored values; ResetPassword sets a new password
// for the account.
type PatchUserInput struct {
	IsActive      *bool    `json:"is_active,omitempty"`
	Role          *string  `json:"role,omitempty"`
	LeaveBalance  *float64 `json:"leave_balance,omitempty"`
	ResetPassword *string  `json:"reset_password,omitempty"`
}

// AdjustLeaveInput is the body for the admin balance-adjustment endpoint.
type AdjustLeaveInput struct {
	UserID       int     `json:"user_id"`
	ChangeAmount float64 `json:"change_amount"`
	Note         *string `json:"note,omitempty"`
}

// AdjustLeaveResponse is returned by /admin/adjust-leave.
type AdjustLeaveResponse struct {
	Message string  `json:"message"`
	Balance float64 `json:"balance"`
}

// MessageResponse is the generic acknowledgement payload.
type MessageResponse struct {
	Message string `json:"message"`
}
