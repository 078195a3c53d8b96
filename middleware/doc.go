// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(cfg.BaseURL, mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type and Authorization. Credentials are allowed only for the
configured base URL origin; any other origin gets "*" without them, so
public card data stays readable while the session cookie is not.

# Sessions

Guard dashboard endpoints with a session:

	mux.HandleFunc("GET /api/profile",
		middleware.WithLogging(middleware.RequireSession(cfg.SessionSecret, h.GetProfile)))

The token is read from the linkcard_session cookie or an
"Authorization: Bearer" header. Handlers read the caller with:

	userID, ok := middleware.UserID(r.Context())

SetSessionCookie and ClearSessionCookie manage the HTTP-only cookie.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used when logging rejected sessions and failed logins.
*/
package middleware
