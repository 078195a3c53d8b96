// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/danielhkuo/linkcard/auth"
	"github.com/danielhkuo/linkcard/cardconfig"
	"github.com/danielhkuo/linkcard/cardstyle"
	"github.com/danielhkuo/linkcard/cliparse"
	"github.com/danielhkuo/linkcard/db"
	"github.com/danielhkuo/linkcard/imaging"
	"github.com/danielhkuo/linkcard/middleware"
	"github.com/danielhkuo/linkcard/models"
)

// Theme is free-form; only its size is bounded
const maxThemeLen = 64

var handlePattern = regexp.MustCompile(`^[a-z0-9_.-]{2,30}$`)

// Handles that would shadow a route or a dashboard page
var reservedHandles = map[string]bool{
	"api":       true,
	"auth":      true,
	"health":    true,
	"uploads":   true,
	"dashboard": true,
	"login":     true,
}

// Image kind -> profile column
var imageColumns = map[string]string{
	models.ImageAvatar:     "avatar_url",
	models.ImageMiniAvatar: "mini_avatar_url",
	models.ImageIcon:       "icon_url",
	models.ImageGrain:      "grain_url",
}

type ProfileHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	cards *cardconfig.Store
}

func NewProfileHandler(db *sql.DB, cfg cliparse.Config, cards *cardconfig.Store) *ProfileHandler {
	return &ProfileHandler{db: db, cfg: cfg, cards: cards}
}

// GetProfile handles GET /api/profile
// Returns {} when the user has not created a profile yet
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	profile, err := scanProfile(h.db.QueryRow(
		"SELECT "+profileColumns+" FROM profile WHERE user_id = $1", userID))

	if errors.Is(err, sql.ErrNoRows) {
		middleware.JSONResponse(w, http.StatusOK, struct{}{})
		return
	}
	if err != nil {
		slog.Error("failed to query profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, profile)
}

// SaveProfile handles POST /api/profile
// Creates or replaces the caller's profile
func (h *ProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.SaveProfileRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	profile := applyProfileDefaults(req, h.cards.Current().Defaults)
	if err := validateProfile(&profile); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	now := timestamp()
	_, err := h.db.Exec(`
		INSERT INTO profile (id, user_id, handle, name, title, status, contact_text,
		                     avatar_url, mini_avatar_url, icon_url, grain_url,
		                     behind_gradient, inner_gradient,
		                     show_behind_gradient, enable_tilt, show_user_info, card_radius, bio, theme,
		                     created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $20)
		ON CONFLICT (user_id) DO UPDATE SET
			handle = excluded.handle,
			name = excluded.name,
			title = excluded.title,
			status = excluded.status,
			contact_text = excluded.contact_text,
			avatar_url = excluded.avatar_url,
			mini_avatar_url = excluded.mini_avatar_url,
			icon_url = excluded.icon_url,
			grain_url = excluded.grain_url,
			behind_gradient = excluded.behind_gradient,
			inner_gradient = excluded.inner_gradient,
			show_behind_gradient = excluded.show_behind_gradient,
			enable_tilt = excluded.enable_tilt,
			show_user_info = excluded.show_user_info,
			card_radius = excluded.card_radius,
			bio = excluded.bio,
			theme = excluded.theme,
			updated_at = excluded.updated_at
	`, auth.GenerateID(), userID, profile.Handle, profile.Name, profile.Title, profile.Status, profile.ContactText,
		profile.AvatarURL, profile.MiniAvatarURL, profile.IconURL, profile.GrainURL,
		profile.BehindGradient, profile.InnerGradient,
		profile.ShowBehindGradient, profile.EnableTilt, profile.ShowUserInfo, profile.CardRadius, profile.Bio, profile.Theme,
		now)

	if db.IsUniqueViolation(err) {
		middleware.ErrorResponse(w, http.StatusConflict, "Handle already taken")
		return
	}
	if err != nil {
		slog.Error("failed to save profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	saved, err := scanProfile(h.db.QueryRow(
		"SELECT "+profileColumns+" FROM profile WHERE user_id = $1", userID))
	if err != nil {
		slog.Error("failed to reload profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("profile saved", "user_id", userID, "profile_id", saved.ID, "handle", saved.Handle)

	middleware.JSONResponse(w, http.StatusOK, saved)
}

// UploadImage handles POST /api/profile/images/{kind}
// Stores the multipart "file" as WebP and points the profile at it
func (h *ProfileHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	kind := r.PathValue("kind")
	column, ok := imageColumns[kind]
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "kind must be one of: avatar, mini-avatar, icon, grain")
		return
	}

	var profileID, oldURL string
	err := h.db.QueryRow(
		"SELECT id, "+column+" FROM profile WHERE user_id = $1", userID,
	).Scan(&profileID, &oldURL)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Create a profile before uploading images")
		return
	}
	if err != nil {
		slog.Error("failed to query profile", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	limits := h.cards.Current().Uploads
	maxBytes, err := limits.MaxBytes()
	if err != nil {
		slog.Error("invalid upload size limit", "max_size", limits.MaxSize, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Uploads misconfigured")
		return
	}

	// Leave room for the multipart envelope around the file
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+64<<10)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Image must be at most "+limits.MaxSize)
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Expected multipart form with a file field")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if header.Size > maxBytes {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Image must be at most "+limits.MaxSize)
		return
	}

	img, err := imaging.Process(file, header.Filename, limits.MaxDimension, limits.MaxPixels)
	if errors.Is(err, imaging.ErrImageTooLarge) {
		slog.Info("image rejected", "kind", kind, "filename", header.Filename, "error", err)
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Image dimensions are too large")
		return
	}
	if errors.Is(err, imaging.ErrUnsupportedFormat) {
		middleware.ErrorResponse(w, http.StatusUnsupportedMediaType, "Supported formats: png, jpeg, gif, bmp, tga, webp")
		return
	}
	if err != nil {
		slog.Info("image rejected", "kind", kind, "filename", header.Filename, "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Could not read image")
		return
	}

	name := fmt.Sprintf("%s-%s-%s.webp", profileID, kind, auth.GenerateID()[:8])
	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		slog.Error("failed to create upload dir", "dir", h.cfg.UploadDir, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store image")
		return
	}
	if err := os.WriteFile(filepath.Join(h.cfg.UploadDir, name), img.Data, 0o644); err != nil {
		slog.Error("failed to write image", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	imageURL := "/uploads/" + name
	_, err = h.db.Exec(
		"UPDATE profile SET "+column+" = $1, updated_at = $2 WHERE id = $3",
		imageURL, timestamp(), profileID)
	if err != nil {
		slog.Error("failed to update profile image", "error", err)
		os.Remove(filepath.Join(h.cfg.UploadDir, name))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	h.removeUpload(oldURL)

	slog.Info("image uploaded",
		"profile_id", profileID,
		"kind", kind,
		"source_format", img.SourceFormat,
		"width", img.Width,
		"height", img.Height,
		"bytes", len(img.Data),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.UploadImageResponse{
		Kind:   kind,
		URL:    imageURL,
		Width:  img.Width,
		Height: img.Height,
	})
}

// removeUpload deletes a replaced image if it was one of ours
func (h *ProfileHandler) removeUpload(imageURL string) {
	name, ok := strings.CutPrefix(imageURL, "/uploads/")
	if !ok || name == "" || strings.ContainsAny(name, `/\`) {
		return
	}
	if err := os.Remove(filepath.Join(h.cfg.UploadDir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to remove replaced image", "file", name, "error", err)
	}
}

// applyProfileDefaults fills omitted fields from the card configuration
func applyProfileDefaults(req models.SaveProfileRequest, d cardconfig.ProfileDefaults) models.Profile {
	p := models.Profile{
		Name:               orDefault(req.Name, d.Name),
		Title:              orDefault(req.Title, d.Title),
		Handle:             req.Handle,
		Status:             orDefault(req.Status, d.Status),
		ContactText:        orDefault(req.ContactText, d.ContactText),
		AvatarURL:          strings.TrimSpace(req.AvatarURL),
		MiniAvatarURL:      strings.TrimSpace(req.MiniAvatarURL),
		IconURL:            strings.TrimSpace(req.IconURL),
		GrainURL:           strings.TrimSpace(req.GrainURL),
		BehindGradient:     strings.TrimSpace(req.BehindGradient),
		InnerGradient:      strings.TrimSpace(req.InnerGradient),
		ShowBehindGradient: d.ShowBehindGradient,
		EnableTilt:         d.EnableTilt,
		ShowUserInfo:       d.ShowUserInfo,
		CardRadius:         d.CardRadius,
		Bio:                strings.TrimSpace(req.Bio),
		Theme:              strings.TrimSpace(req.Theme),
	}
	if req.ShowBehindGradient != nil {
		p.ShowBehindGradient = *req.ShowBehindGradient
	}
	if req.EnableTilt != nil {
		p.EnableTilt = *req.EnableTilt
	}
	if req.ShowUserInfo != nil {
		p.ShowUserInfo = *req.ShowUserInfo
	}
	if req.CardRadius != nil {
		p.CardRadius = *req.CardRadius
	}
	return p
}

func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}

// validateProfile normalises the handle in place and checks every field
func validateProfile(p *models.Profile) error {
	for _, f := range []struct{ name, value string }{
		{"name", p.Name},
		{"title", p.Title},
		{"status", p.Status},
		{"contact_text", p.ContactText},
	} {
		if f.value == "" {
			return fmt.Errorf("%s is required", f.name)
		}
	}

	handle, err := normalizeHandle(p.Handle)
	if err != nil {
		return err
	}
	p.Handle = handle

	for _, f := range []struct{ name, value string }{
		{"avatar_url", p.AvatarURL},
		{"mini_avatar_url", p.MiniAvatarURL},
		{"icon_url", p.IconURL},
		{"grain_url", p.GrainURL},
	} {
		if !validImageURL(f.value) {
			return fmt.Errorf("%s must be an http(s) URL or a path on this site", f.name)
		}
	}

	if p.CardRadius < 0 || p.CardRadius > cardstyle.MaxCardRadius {
		return fmt.Errorf("card_radius must be between 0 and %d", cardstyle.MaxCardRadius)
	}

	if err := cardstyle.ValidateGradient(p.BehindGradient); err != nil {
		return fmt.Errorf("behind_gradient: %w", err)
	}
	if err := cardstyle.ValidateGradient(p.InnerGradient); err != nil {
		return fmt.Errorf("inner_gradient: %w", err)
	}

	if len(p.Theme) > maxThemeLen {
		return fmt.Errorf("theme must be at most %d bytes", maxThemeLen)
	}

	return nil
}

// normalizeHandle strips a leading @ and lowercases
func normalizeHandle(s string) (string, error) {
	handle := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "@"))
	if handle == "" {
		return "", errors.New("handle is required")
	}
	if !handlePattern.MatchString(handle) {
		return "", errors.New("handle must be 2-30 characters of a-z, 0-9, _, . or -")
	}
	if reservedHandles[handle] {
		return "", fmt.Errorf("handle %q is reserved", handle)
	}
	return handle, nil
}

// validImageURL accepts "", an absolute http(s) URL, or a path on this site
func validImageURL(s string) bool {
	if s == "" {
		return true
	}
	if strings.HasPrefix(s, "/") {
		return !strings.HasPrefix(s, "//")
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
