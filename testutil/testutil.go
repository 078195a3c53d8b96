// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/linkcard/auth"
	"github.com/danielhkuo/linkcard/cliparse"
	"github.com/danielhkuo/linkcard/db"
)

// TestPassword is the password of every user created by CreateTestUser
const TestPassword = "password123"

// TestSessionSecret signs sessions in tests
const TestSessionSecret = "test-session-secret"

// SetupTestDB creates a fresh sqlite database with the full schema in a
// per-test temp directory
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, "file:"+filepath.Join(t.TempDir(), "linkcard.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration with uploads in a
// temp directory
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()
	return cliparse.Config{
		Port:          3318,
		DatabaseType:  db.TypeSQLite,
		DatabaseURL:   "file::memory:",
		SessionSecret: TestSessionSecret,
		UploadDir:     t.TempDir(),
		CardConfig:    filepath.Join(t.TempDir(), "card.yaml"),
		BaseURL:       "https://links.test",
	}
}

// CreateTestUser inserts a user with TestPassword and returns its ID and a
// valid session token
func CreateTestUser(t *testing.T, conn *sql.DB, email string) (userID, token string) {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	userID = auth.GenerateID()
	_, err = conn.Exec(`
		INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, email, "Test User", hash, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID, auth.IssueSession(userID, TestSessionSecret, time.Now().UTC())
}

// CreateTestProfile inserts a profile for the user and returns its ID
func CreateTestProfile(t *testing.T, conn *sql.DB, userID, handle string) string {
	t.Helper()

	profileID := auth.GenerateID()
	now := time.Now().UTC()
	_, err := conn.Exec(`
		INSERT INTO profile (id, user_id, handle, name, title, status, contact_text,
		                     show_behind_gradient, enable_tilt, show_user_info, card_radius,
		                     created_at, updated_at)
		VALUES ($1, $2, $3, 'Test User', 'Tester', 'Online', 'Contact', $4, $5, $6, 30, $7, $8)
	`, profileID, userID, handle, true, true, true, now, now)
	if err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}

	return profileID
}

// CreateTestLink adds a link to a profile and returns the link ID
func CreateTestLink(t *testing.T, conn *sql.DB, profileID, url string, order int) string {
	t.Helper()

	linkID := auth.GenerateID()
	_, err := conn.Exec(`
		INSERT INTO link (id, profile_id, url, type, position, created_at)
		VALUES ($1, $2, $3, 'website', $4, $5)
	`, linkID, profileID, url, order, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test link: %v", err)
	}

	return linkID
}

// BearerHeader returns request headers authenticating with token
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
