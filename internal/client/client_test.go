// ABOUTME: Tests for the leave-management API client
// ABOUTME: Uses httptest to mock backend responses

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// staticToken is a fixed TokenSource for tests.
type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("expected path /auth/login, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("failed to decode credentials: %v", err)
		}
		if creds.Username != "alice" || creds.Password != "secret" {
			t.Errorf("unexpected credentials: %+v", creds)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(TokenResponse{AccessToken: "tok-123", TokenType: "bearer"})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	resp, err := c.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken != "tok-123" {
		t.Errorf("expected token tok-123, got %s", resp.AccessToken)
	}
}

func TestLogin_BackendRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Incorrect username or password"))
	}))
	defer server.Close()

	c := New(server.URL, nil)
	_, err := c.Login(context.Background(), "alice", "wrong")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", apiErr.StatusCode)
	}
	// The error message is the raw body text, not a wrapper around it.
	if err.Error() != "Incorrect username or password" {
		t.Errorf("expected backend text verbatim, got %q", err.Error())
	}
}

func TestRegister_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("expected path /auth/register, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(TokenResponse{AccessToken: "tok-new"})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	resp, err := c.Register(context.Background(), "bob", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken != "tok-new" {
		t.Errorf("expected token tok-new, got %s", resp.AccessToken)
	}
}

func TestMe_AttachesBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("expected Authorization 'Bearer tok-123', got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(User{ID: 1, Username: "alice", Role: "user", LeaveBalance: 7.5})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok-123"))
	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("expected username alice, got %s", user.Username)
	}
	if user.LeaveBalance != 7.5 {
		t.Errorf("expected balance 7.5, got %v", user.LeaveBalance)
	}
}

func TestMe_NoTokenNoHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("expected no Authorization header, got %q", got)
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Not authenticated"))
	}))
	defer server.Close()

	c := New(server.URL, staticToken(""))
	_, err := c.Me(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestBalance_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/leave/balance" {
			t.Errorf("expected path /leave/balance, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(BalanceResponse{LeaveBalance: 12})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	resp, err := c.Balance(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.LeaveBalance != 12 {
		t.Errorf("expected balance 12, got %v", resp.LeaveBalance)
	}
}

func TestBalance_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	_, err := c.Balance(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("decode failure must not classify as a backend rejection")
	}
	if !strings.Contains(err.Error(), "/leave/balance") {
		t.Errorf("expected path in message, got %q", err.Error())
	}
}

func TestCreateRecord_AbsentDatesStayNull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/leave" {
			t.Errorf("expected path /leave, got %s", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body["start_date"] != nil {
			t.Errorf("expected null start_date, got %v", body["start_date"])
		}
		if body["end_date"] != nil {
			t.Errorf("expected null end_date, got %v", body["end_date"])
		}
		if body["record_type"] != "FULL_DAY" {
			t.Errorf("expected record_type FULL_DAY, got %v", body["record_type"])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(LeaveRecord{ID: 7, RecordType: "FULL_DAY", TotalLeaveDays: 1})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	record, err := c.CreateRecord(context.Background(), &LeaveRecordInput{
		RecordType: RecordFullDay,
		StartHalf:  "AM",
		EndHalf:    "PM",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ID != 7 {
		t.Errorf("expected record id 7, got %d", record.ID)
	}
}

func TestCreateRecord_ValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte("start_date is required for FULL_DAY records"))
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	_, err := c.CreateRecord(context.Background(), &LeaveRecordInput{RecordType: RecordFullDay})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "start_date is required for FULL_DAY records" {
		t.Errorf("expected backend text verbatim, got %q", err.Error())
	}
}

func TestMyRecords_Pagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/leave/my" {
			t.Errorf("expected path /leave/my, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("page") != "2" {
			t.Errorf("expected page=2, got %s", q.Get("page"))
		}
		if q.Get("page_size") != "10" {
			t.Errorf("expected page_size=10, got %s", q.Get("page_size"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(RecordPage{
			Items: []LeaveRecord{
				{ID: 11, RecordType: "FULL_DAY", StartDatetime: "2024-05-01T00:00:00", TotalLeaveDays: 1},
			},
			Total:    15,
			Page:     2,
			PageSize: 10,
		})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	page, err := c.MyRecords(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(page.Items))
	}
	if page.Total != 15 {
		t.Errorf("expected total 15, got %d", page.Total)
	}
}

func TestUpdateRecord_Path(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/leave/42" {
			t.Errorf("expected path /leave/42, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(LeaveRecord{ID: 42})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	note := "updated"
	record, err := c.UpdateRecord(context.Background(), 42, &LeaveRecordUpdate{Note: &note})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ID != 42 {
		t.Errorf("expected record id 42, got %d", record.ID)
	}
}

func TestDeleteRecord_Path(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/leave/9" {
			t.Errorf("expected path /leave/9, got %s", r.URL.Path)
		}
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(MessageResponse{Message: "Record deleted"})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	msg, err := c.DeleteRecord(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Message != "Record deleted" {
		t.Errorf("unexpected message: %s", msg.Message)
	}
}

func TestUsers_AdminForbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("Admin access required"))
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	_, err := c.Users(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "Admin access required" {
		t.Errorf("expected backend text verbatim, got %q", err.Error())
	}
}

func TestAllRecords_Pagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/all-records" {
			t.Errorf("expected path /admin/all-records, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("page_size") != "20" {
			t.Errorf("expected page_size=20, got %s", r.URL.Query().Get("page_size"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(RecordPage{Items: []LeaveRecord{}, Total: 0, Page: 1, PageSize: 20})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	page, err := c.AllRecords(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 0 {
		t.Errorf("expected total 0, got %d", page.Total)
	}
}

func TestAdjustLeave_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/adjust-leave" {
			t.Errorf("expected path /admin/adjust-leave, got %s", r.URL.Path)
		}
		var input AdjustLeaveInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if input.UserID != 3 || input.ChangeAmount != 2.5 {
			t.Errorf("unexpected input: %+v", input)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AdjustLeaveResponse{Message: "Balance adjusted", Balance: 10})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	resp, err := c.AdjustLeave(context.Background(), &AdjustLeaveInput{UserID: 3, ChangeAmount: 2.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Balance != 10 {
		t.Errorf("expected balance 10, got %v", resp.Balance)
	}
}

func TestPatchUser_SendsOnlyChangedFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/users/5" {
			t.Errorf("expected path /admin/users/5, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body["is_active"] != false {
			t.Errorf("expected is_active false, got %v", body["is_active"])
		}
		// Unset fields stay out of the payload so stored values survive.
		for _, key := range []string{"role", "leave_balance", "reset_password"} {
			if _, present := body[key]; present {
				t.Errorf("expected %s absent from payload", key)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(User{ID: 5, Username: "carol", Role: "user", IsActive: false})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	active := false
	user, err := c.PatchUser(context.Background(), 5, &PatchUserInput{IsActive: &active})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.IsActive {
		t.Error("expected deactivated user in response")
	}
}

func TestPatchUser_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("User not found"))
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	role := "admin"
	_, err := c.PatchUser(context.Background(), 99, &PatchUserInput{Role: &role})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "User not found" {
		t.Errorf("expected backend text verbatim, got %q", err.Error())
	}
}

func TestConnectionError(t *testing.T) {
	c := New("http://localhost:1", staticToken("tok"))
	_, err := c.Balance(context.Background())
	if err == nil {
		t.Fatal("expected connection error, got nil")
	}
	if !strings.Contains(err.Error(), "cannot connect to backend") {
		t.Errorf("expected connect message, got %q", err.Error())
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(BalanceResponse{LeaveBalance: 1})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := c.Balance(ctx)
	if err == nil {
		t.Fatal("expected error for canceled context, got nil")
	}
	if !strings.Contains(err.Error(), "canceled") {
		t.Errorf("expected cancellation message, got %q", err.Error())
	}
}

func TestContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(BalanceResponse{LeaveBalance: 1})
	}))
	defer server.Close()

	c := New(server.URL, staticToken("tok"))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Balance(ctx)
	if err == nil {
		t.Fatal("expected error for timed out context, got nil")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("expected timeout message, got %q", err.Error())
	}
}

func TestBaseURLTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/leave/balance" {
			t.Errorf("expected path /leave/balance, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(BalanceResponse{LeaveBalance: 1})
	}))
	defer server.Close()

	c := New(server.URL+"/", staticToken("tok"))
	if _, err := c.Balance(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUserIsAdmin(t *testing.T) {
	var nilUser *User
	if nilUser.IsAdmin() {
		t.Error("nil user must not be admin")
	}
	if (&User{Role: "user"}).IsAdmin() {
		t.Error("role user must not be admin")
	}
	if !(&User{Role: "admin"}).IsAdmin() {
		t.Error("role admin must be admin")
	}
}

func TestRecordStartDate(t *testing.T) {
	r := &LeaveRecord{StartDatetime: "2024-05-01T00:00:00"}
	if got := r.StartDate(); got != "2024-05-01" {
		t.Errorf("expected 2024-05-01, got %s", got)
	}

	short := &LeaveRecord{StartDatetime: "2024"}
	if got := short.StartDate(); got != "2024" {
		t.Errorf("expected short value unchanged, got %s", got)
	}
}
