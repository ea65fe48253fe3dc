// ABOUTME: Tests for the login and logout commands
// ABOUTME: Verifies the auth flow, token persistence, and error paths

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leavedesk/leavectl/internal/client"
)

// authServer mocks the login and profile endpoints together.
func authServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var creds client.Credentials
			json.NewDecoder(r.Body).Decode(&creds)
			if creds.Password != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte("Incorrect username or password"))
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(client.TokenResponse{AccessToken: "tok-123"})
		case "/auth/register":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(client.TokenResponse{AccessToken: "tok-new"})
		case "/auth/me":
			if r.Header.Get("Authorization") == "" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte("Not authenticated"))
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(client.User{ID: 1, Username: "alice", Role: "user", LeaveBalance: 7.5})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestLoginCommand_MissingFlags(t *testing.T) {
	loginUsername = ""
	loginPassword = ""

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "required") {
		t.Errorf("expected usage hint, got %q", buf.String())
	}
}

func TestLoginCommand_Success(t *testing.T) {
	server := authServer(t)
	defer server.Close()

	configDir := t.TempDir()
	t.Setenv("LEAVECTL_CONFIG_DIR", configDir)
	apiURL = server.URL
	loginUsername = "alice"
	loginPassword = "secret"
	defer func() { apiURL = ""; loginUsername = ""; loginPassword = "" }()

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d; output: %s", exitCode, buf.String())
	}
	if !strings.Contains(buf.String(), "Logged in as alice (user)") {
		t.Errorf("expected login confirmation, got %q", buf.String())
	}

	// The token is persisted for later runs.
	data, err := os.ReadFile(filepath.Join(configDir, "token"))
	if err != nil {
		t.Fatalf("expected token file: %v", err)
	}
	if string(data) != "tok-123" {
		t.Errorf("expected tok-123 persisted, got %q", string(data))
	}
}

func TestLoginCommand_Rejection(t *testing.T) {
	server := authServer(t)
	defer server.Close()

	t.Setenv("LEAVECTL_CONFIG_DIR", t.TempDir())
	apiURL = server.URL
	loginUsername = "alice"
	loginPassword = "wrong"
	defer func() { apiURL = ""; loginUsername = ""; loginPassword = "" }()

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf)

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	// The backend's own words, not a rephrasing.
	if !strings.Contains(buf.String(), "Incorrect username or password") {
		t.Errorf("expected backend text verbatim, got %q", buf.String())
	}
}

func TestLoginCommand_Register(t *testing.T) {
	server := authServer(t)
	defer server.Close()

	configDir := t.TempDir()
	t.Setenv("LEAVECTL_CONFIG_DIR", configDir)
	apiURL = server.URL
	loginUsername = "bob"
	loginPassword = "secret"
	loginRegister = true
	defer func() { apiURL = ""; loginUsername = ""; loginPassword = ""; loginRegister = false }()

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d; output: %s", exitCode, buf.String())
	}

	data, err := os.ReadFile(filepath.Join(configDir, "token"))
	if err != nil {
		t.Fatalf("expected token file: %v", err)
	}
	if string(data) != "tok-new" {
		t.Errorf("expected registration token persisted, got %q", string(data))
	}
}

func TestLogoutCommand(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("LEAVECTL_CONFIG_DIR", configDir)

	tokenPath := filepath.Join(configDir, "token")
	if err := os.WriteFile(tokenPath, []byte("tok-123"), 0600); err != nil {
		t.Fatalf("failed to seed token file: %v", err)
	}

	var buf bytes.Buffer
	exitCode := runLogout(&buf)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Logged out") {
		t.Errorf("expected logout confirmation, got %q", buf.String())
	}
	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Error("expected token file removed")
	}
}

func TestLogoutCommand_NoTokenStored(t *testing.T) {
	t.Setenv("LEAVECTL_CONFIG_DIR", t.TempDir())

	var buf bytes.Buffer
	if exitCode := runLogout(&buf); exitCode != 0 {
		t.Errorf("expected logout without a token to succeed, got %d", exitCode)
	}
}
