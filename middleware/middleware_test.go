// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/linkcard/auth"
	"github.com/danielhkuo/linkcard/models"
)

const testSecret = "test-secret"

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusConflict, "Handle already taken")

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Error("Expected Content-Type 'application/json'")
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error != "Conflict" || resp.Message != "Handle already taken" {
		t.Errorf("Unexpected error body %+v", resp)
	}
}

func TestParseJSONBody(t *testing.T) {
	var parsed models.CreateLinkRequest
	req := httptest.NewRequest("POST", "/api/links", strings.NewReader(`{"url":"https://example.com","type":"website","order":2}`))
	if err := ParseJSONBody(req, &parsed); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if parsed.URL != "https://example.com" || parsed.Type != "website" || parsed.Order == nil || *parsed.Order != 2 {
		t.Errorf("Unexpected parse result %+v", parsed)
	}

	req = httptest.NewRequest("POST", "/api/links", strings.NewReader(`{"url":`))
	if err := ParseJSONBody(req, &parsed); err == nil {
		t.Error("Expected error for truncated JSON")
	}
}

func TestCORS(t *testing.T) {
	const dashboard = "https://links.example.com"

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("handled"))
	})

	testCases := []struct {
		name            string
		allowed         string
		method          string
		origin          string
		wantOrigin      string
		wantCredentials bool
		wantBody        string
	}{
		{"dashboard origin", dashboard, "GET", dashboard, dashboard, true, "handled"},
		{"dashboard preflight", dashboard, "OPTIONS", dashboard, dashboard, true, ""},
		{"foreign origin", dashboard, "GET", "https://evil.example", "*", false, "handled"},
		{"foreign preflight", dashboard, "OPTIONS", "https://evil.example", "*", false, ""},
		{"no origin", dashboard, "GET", "", "*", false, "handled"},
		{"no base url configured", "", "GET", "http://localhost:3318", "*", false, "handled"},
		{"empty origin never matches empty base url", "", "GET", "", "*", false, "handled"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/api/profile", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			w := httptest.NewRecorder()

			CORS(tc.allowed, next).ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Errorf("Expected status 200, got %d", w.Code)
			}
			if w.Body.String() != tc.wantBody {
				t.Errorf("Expected body %q, got %q", tc.wantBody, w.Body.String())
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tc.wantOrigin {
				t.Errorf("Expected Allow-Origin %q, got %q", tc.wantOrigin, got)
			}
			gotCredentials := w.Header().Get("Access-Control-Allow-Credentials") == "true"
			if gotCredentials != tc.wantCredentials {
				t.Errorf("Expected credentials %v, got %v", tc.wantCredentials, gotCredentials)
			}
			if w.Header().Get("Vary") != "Origin" {
				t.Error("Expected Vary: Origin")
			}
			if !strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), "Authorization") {
				t.Error("Expected Authorization in allowed headers")
			}
		})
	}
}

func TestSessionToken(t *testing.T) {
	testCases := []struct {
		name   string
		auth   string
		cookie string
		want   string
	}{
		{"nothing", "", "", ""},
		{"cookie only", "", "from-cookie", "from-cookie"},
		{"bearer only", "Bearer from-header", "", "from-header"},
		{"bearer wins over cookie", "Bearer from-header", "from-cookie", "from-header"},
		{"bearer is trimmed", "Bearer   padded  ", "", "padded"},
		{"empty bearer falls back to cookie", "Bearer   ", "from-cookie", "from-cookie"},
		{"basic auth falls back to cookie", "Basic dXNlcjpwYXNz", "from-cookie", "from-cookie"},
		{"lowercase scheme is not bearer", "bearer from-header", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/profile", nil)
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.cookie})
			}

			if got := SessionToken(req); got != tc.want {
				t.Errorf("Expected token %q, got %q", tc.want, got)
			}
		})
	}
}

func TestUserIDContext(t *testing.T) {
	if _, ok := UserID(context.Background()); ok {
		t.Error("Expected no user ID on a bare context")
	}

	ctx := WithUserID(context.Background(), "user-1")
	if id, ok := UserID(ctx); !ok || id != "user-1" {
		t.Errorf("Expected user-1, got %q (ok=%v)", id, ok)
	}

	// An inner WithUserID shadows the outer one
	inner := WithUserID(ctx, "user-2")
	if id, _ := UserID(inner); id != "user-2" {
		t.Errorf("Expected user-2, got %q", id)
	}
	if id, _ := UserID(ctx); id != "user-1" {
		t.Errorf("Expected parent context unchanged, got %q", id)
	}

	if _, ok := UserID(WithUserID(context.Background(), "")); ok {
		t.Error("Expected empty user ID to count as missing")
	}
}

func TestRequireSession(t *testing.T) {
	userID := auth.GenerateID()
	otherID := auth.GenerateID()
	now := time.Now()
	valid := auth.IssueSession(userID, testSecret, now)
	expired := auth.IssueSession(userID, testSecret, now.Add(-2*auth.SessionTTL))
	otherValid := auth.IssueSession(otherID, testSecret, now)

	// Swap the user ID but keep the signature of the original token
	parts := strings.SplitN(valid, ".", 2)
	forged := otherID + "." + parts[1]

	testCases := []struct {
		name       string
		auth       string
		cookie     string
		wantStatus int
		wantUser   string
	}{
		{"no credentials", "", "", http.StatusUnauthorized, ""},
		{"bearer token", "Bearer " + valid, "", http.StatusOK, userID},
		{"cookie", "", valid, http.StatusOK, userID},
		{"bearer picks the user over the cookie", "Bearer " + otherValid, valid, http.StatusOK, otherID},
		{"wrong secret", "Bearer " + auth.IssueSession(userID, "other", now), "", http.StatusUnauthorized, ""},
		{"expired", "Bearer " + expired, "", http.StatusUnauthorized, ""},
		{"forged user id", "Bearer " + forged, "", http.StatusUnauthorized, ""},
		{"garbage cookie", "", "not-a-token", http.StatusUnauthorized, ""},
		{"stale bearer does not fall back to cookie", "Bearer " + expired, valid, http.StatusUnauthorized, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotUser string
			handler := RequireSession(testSecret, func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = UserID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/api/profile", nil)
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.cookie})
			}
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("Expected status %d, got %d", tc.wantStatus, w.Code)
			}
			if gotUser != tc.wantUser {
				t.Errorf("Expected user %q in context, got %q", tc.wantUser, gotUser)
			}
		})
	}
}

func TestSessionCookies(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		expires := time.Now().Add(auth.SessionTTL).Truncate(time.Second)
		w := httptest.NewRecorder()
		SetSessionCookie(w, "tok", expires, true)

		cookies := w.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("Expected 1 cookie, got %d", len(cookies))
		}
		c := cookies[0]
		if c.Name != SessionCookie || c.Value != "tok" {
			t.Errorf("Unexpected cookie %s=%s", c.Name, c.Value)
		}
		if c.Path != "/" {
			t.Errorf("Expected path /, got %q", c.Path)
		}
		if !c.HttpOnly || !c.Secure {
			t.Error("Expected HttpOnly and Secure cookie")
		}
		if c.SameSite != http.SameSiteLaxMode {
			t.Errorf("Expected SameSite=Lax, got %v", c.SameSite)
		}
		if !c.Expires.Equal(expires) {
			t.Errorf("Expected expiry %v, got %v", expires, c.Expires)
		}
	})

	t.Run("insecure for plain http", func(t *testing.T) {
		w := httptest.NewRecorder()
		SetSessionCookie(w, "tok", time.Now().Add(time.Hour), false)

		if c := w.Result().Cookies()[0]; c.Secure {
			t.Error("Expected non-Secure cookie when base URL is http")
		}
	})

	t.Run("clear", func(t *testing.T) {
		w := httptest.NewRecorder()
		ClearSessionCookie(w, false)

		cookies := w.Result().Cookies()
		if len(cookies) != 1 || cookies[0].MaxAge >= 0 || cookies[0].Value != "" {
			t.Errorf("Expected an expiring empty cookie, got %+v", cookies)
		}
		if cookies[0].Name != SessionCookie || cookies[0].Path != "/" {
			t.Errorf("Expected to clear %s at /, got %+v", SessionCookie, cookies[0])
		}
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expectedIP string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.195, 70.41.3.18"}, "127.0.0.1:1", "203.0.113.195"},
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.50"}, "10.0.0.1:1", "203.0.113.50"},
		{"remote addr", nil, "192.168.1.50:54321", "192.168.1.50"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			if got := GetClientIP(req); got != tc.expectedIP {
				t.Errorf("Expected IP '%s', got '%s'", tc.expectedIP, got)
			}
		})
	}
}
