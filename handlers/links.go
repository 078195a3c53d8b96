// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/danielhkuo/linkcard/auth"
	"github.com/danielhkuo/linkcard/cliparse"
	"github.com/danielhkuo/linkcard/middleware"
	"github.com/danielhkuo/linkcard/models"
)

const (
	maxLinkURLLength  = 2048
	maxLinkTypeLength = 40
)

type LinkHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewLinkHandler(db *sql.DB, cfg cliparse.Config) *LinkHandler {
	return &LinkHandler{db: db, cfg: cfg}
}

// ListLinks handles GET /api/links
func (h *LinkHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	profileID, err := profileIDForUser(h.db, userID)
	if errors.Is(err, sql.ErrNoRows) {
		// No profile yet means no links
		middleware.JSONResponse(w, http.StatusOK, []models.Link{})
		return
	}
	if err != nil {
		slog.Error("failed to query profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	links, err := listLinks(h.db, profileID)
	if err != nil {
		slog.Error("failed to query links", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error fetching links")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, links)
}

// CreateLink handles POST /api/links
// Without an order the link goes to the end of the list
func (h *LinkHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.CreateLinkRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	link := models.Link{
		URL:  strings.TrimSpace(req.URL),
		Type: strings.TrimSpace(req.Type),
	}
	if msg := validateLink(link); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	profileID, err := profileIDForUser(h.db, userID)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		slog.Error("failed to query profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if req.Order != nil {
		link.Order = *req.Order
	} else {
		err := h.db.QueryRow(
			"SELECT COALESCE(MAX(position) + 1, 0) FROM link WHERE profile_id = $1", profileID,
		).Scan(&link.Order)
		if err != nil {
			slog.Error("failed to query link positions", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	link.ID = auth.GenerateID()
	link.ProfileID = profileID
	link.CreatedAt = timestamp()

	_, err = h.db.Exec(`
		INSERT INTO link (id, profile_id, url, type, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, link.ID, link.ProfileID, link.URL, link.Type, link.Order, link.CreatedAt)

	if err != nil {
		slog.Error("failed to insert link", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error creating link")
		return
	}

	slog.Info("link created", "profile_id", profileID, "link_id", link.ID)

	middleware.JSONResponse(w, http.StatusCreated, link)
}

// UpdateLink handles PUT /api/links/{id}
func (h *LinkHandler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	linkID := r.PathValue("id")
	if linkID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "link id is required")
		return
	}

	var req models.UpdateLinkRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Only links on the caller's own profile are visible
	link, err := scanLink(h.db.QueryRow(`
		SELECT l.id, l.profile_id, l.url, l.type, l.position, l.created_at
		FROM link l
		JOIN profile p ON p.id = l.profile_id
		WHERE l.id = $1 AND p.user_id = $2
	`, linkID, userID))

	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Link not found")
		return
	}
	if err != nil {
		slog.Error("failed to query link", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if req.URL != nil {
		link.URL = strings.TrimSpace(*req.URL)
	}
	if req.Type != nil {
		link.Type = strings.TrimSpace(*req.Type)
	}
	if req.Order != nil {
		link.Order = *req.Order
	}
	if msg := validateLink(link); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	_, err = h.db.Exec(`
		UPDATE link SET url = $1, type = $2, position = $3
		WHERE id = $4
	`, link.URL, link.Type, link.Order, link.ID)

	if err != nil {
		slog.Error("failed to update link", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error updating link")
		return
	}

	slog.Info("link updated", "link_id", link.ID)

	middleware.JSONResponse(w, http.StatusOK, link)
}

// DeleteLink handles DELETE /api/links/{id} and DELETE /api/links?id=
func (h *LinkHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	linkID := r.PathValue("id")
	if linkID == "" {
		linkID = r.URL.Query().Get("id")
	}
	if linkID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing ID")
		return
	}

	profileID, err := profileIDForUser(h.db, userID)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		slog.Error("failed to query profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	result, err := h.db.Exec("DELETE FROM link WHERE id = $1 AND profile_id = $2", linkID, profileID)
	if err != nil {
		slog.Error("failed to delete link", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error deleting link")
		return
	}

	if n, _ := result.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Link not found")
		return
	}

	slog.Info("link deleted", "profile_id", profileID, "link_id", linkID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Link deleted"})
}

// listLinks returns a profile's links in display order
func listLinks(db *sql.DB, profileID string) ([]models.Link, error) {
	rows, err := db.Query(`
		SELECT id, profile_id, url, type, position, created_at
		FROM link
		WHERE profile_id = $1
		ORDER BY position, created_at, id
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []models.Link{}
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

func scanLink(row rowScanner) (models.Link, error) {
	var l models.Link
	err := row.Scan(&l.ID, &l.ProfileID, &l.URL, &l.Type, &l.Order, &l.CreatedAt)
	return l, err
}

// validateLink returns a client-facing message, or "" when the link is valid
func validateLink(l models.Link) string {
	if l.URL == "" {
		return "url is required"
	}
	if l.Type == "" {
		return "type is required"
	}
	if len(l.URL) > maxLinkURLLength {
		return "url is too long"
	}
	if len(l.Type) > maxLinkTypeLength {
		return "type is too long"
	}
	u, err := url.Parse(l.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "url must be an absolute http(s) URL"
	}
	return ""
}
