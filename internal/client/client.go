// ABOUTME: HTTP client for the leave-management API
// ABOUTME: Attaches bearer tokens, encodes JSON bodies, normalizes error responses

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenSource supplies the bearer token for authenticated requests.
// The client only reads tokens; session lifecycle belongs to the caller.
type TokenSource interface {
	Token() string
}

// Client is the API client for the leave-management backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// New creates a new API client. tokens may be nil for unauthenticated use.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
	}
}

// APIError is a non-success response from the backend. Its message is the
// raw response body text, matching what the backend chose to say.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return e.Body
}

// DecodeError is a successful response whose body did not match the
// expected schema. Kept distinct from APIError so callers can tell a
// backend rejection from a contract mismatch.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid response from %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// do runs one request against the backend. body is JSON-encoded when
// non-nil; out is decoded from the response body when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(text))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}

// handleRequestError converts transport failures to user-friendly messages.
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// Login calls POST /auth/login.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	var token TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", &Credentials{Username: username, Password: password}, &token)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Register calls POST /auth/register.
func (c *Client) Register(ctx context.Context, username, password string) (*TokenResponse, error) {
	var token TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", &Credentials{Username: username, Password: password}, &token)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Me calls GET /auth/me.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword calls POST /auth/change-password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) (*MessageResponse, error) {
	var msg MessageResponse
	input := &ChangePasswordInput{OldPassword: oldPassword, NewPassword: newPassword}
	if err := c.do(ctx, http.MethodPost, "/auth/change-password", input, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Balance calls GET /leave/balance.
func (c *Client) Balance(ctx context.Context) (*BalanceResponse, error) {
	var balance BalanceResponse
	if err := c.do(ctx, http.MethodGet, "/leave/balance", nil, &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}

// CreateRecord calls POST /leave.
func (c *Client) CreateRecord(ctx context.Context, input *LeaveRecordInput) (*LeaveRecord, error) {
	var record LeaveRecord
	if err := c.do(ctx, http.MethodPost, "/leave", input, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateRecord calls PUT /leave/{id}.
func (c *Client) UpdateRecord(ctx context.Context, id int, input *LeaveRecordUpdate) (*LeaveRecord, error) {
	var record LeaveRecord
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/leave/%d", id), input, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteRecord calls DELETE /leave/{id}.
func (c *Client) DeleteRecord(ctx context.Context, id int) (*MessageResponse, error) {
	var msg MessageResponse
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/leave/%d", id), nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// MyRecords calls GET /leave/my with pagination parameters.
func (c *Client) MyRecords(ctx context.Context, page, pageSize int) (*RecordPage, error) {
	var records RecordPage
	path := fmt.Sprintf("/leave/my?page=%d&page_size=%d", page, pageSize)
	if err := c.do(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	return &records, nil
}

// Users calls GET /admin/users. Admin only.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser calls POST /admin/users. Admin only.
func (c *Client) CreateUser(ctx context.Context, input *CreateUserInput) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/admin/users", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// PatchUser calls PATCH /admin/users/{id}. Admin only.
func (c *Client) PatchUser(ctx context.Context, id int, input *PatchUserInput) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/admin/users/%d", id), input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// AdjustLeave calls POST /admin/adjust-leave. Admin only.
func (c *Client) AdjustLeave(ctx context.Context, input *AdjustLeaveInput) (*AdjustLeaveResponse, error) {
	var result AdjustLeaveResponse
	if err := c.do(ctx, http.MethodPost, "/admin/adjust-leave", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AllRecords calls GET /admin/all-records with pagination parameters. Admin only.
func (c *Client) AllRecords(ctx context.Context, page, pageSize int) (*RecordPage, error) {
	var records RecordPage
	path := fmt.Sprintf("/admin/all-records?page=%d&page_size=%d", page, pageSize)
	if err := c.do(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	return &records, nil
}
