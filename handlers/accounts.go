// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/danielhkuo/linkcard/auth"
	"github.com/danielhkuo/linkcard/cliparse"
	"github.com/danielhkuo/linkcard/db"
	"github.com/danielhkuo/linkcard/middleware"
	"github.com/danielhkuo/linkcard/models"
)

type AccountHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAccountHandler(db *sql.DB, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{db: db, cfg: cfg}
}

// Register handles POST /auth/register
// Creates the account and logs it in
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email, ok := normalizeEmail(req.Email)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	user := models.User{
		ID:        auth.GenerateID(),
		Email:     email,
		Name:      name,
		CreatedAt: timestamp(),
	}

	_, err = h.db.Exec(`
		INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, user.ID, user.Email, user.Name, hash, user.CreatedAt)

	if db.IsUniqueViolation(err) {
		middleware.ErrorResponse(w, http.StatusConflict, "An account with this email already exists")
		return
	}
	if err != nil {
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	slog.Info("account created", "user_id", user.ID)

	h.startSession(w, http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email, ok := normalizeEmail(req.Email)
	if !ok || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.findUser("email", email)
	if errors.Is(err, sql.ErrNoRows) {
		slog.Info("login failed", "reason", "unknown email", "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		slog.Info("login failed", "reason", "wrong password", "user_id", user.ID, "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	slog.Info("user logged in", "user_id", user.ID)

	h.startSession(w, http.StatusOK, user)
}

// Logout handles POST /auth/logout
// Sessions are stateless, so this only clears the cookie
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, h.cfg.Secure)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Logged out"})
}

// Me handles GET /auth/me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
		return
	}

	user, err := h.findUser("id", userID)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Account not found")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, user)
}

func (h *AccountHandler) startSession(w http.ResponseWriter, status int, user models.User) {
	now := time.Now()
	token := auth.IssueSession(user.ID, h.cfg.SessionSecret, now)
	expires := now.Add(auth.SessionTTL)

	middleware.SetSessionCookie(w, token, expires, h.cfg.Secure)
	middleware.JSONResponse(w, status, models.SessionResponse{
		Token:     token,
		ExpiresAt: expires,
		User:      user,
	})
}

// findUser looks a user up by "id" or "email"
func (h *AccountHandler) findUser(column, value string) (models.User, error) {
	query := `SELECT id, email, name, password_hash, created_at FROM users WHERE id = $1`
	if column == "email" {
		query = `SELECT id, email, name, password_hash, created_at FROM users WHERE email = $1`
	}

	var user models.User
	err := h.db.QueryRow(query, value).Scan(&user.ID, &user.Email, &user.Name, &user.Password, &user.CreatedAt)
	return user, err
}

func normalizeEmail(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", false
	}
	return s, true
}
