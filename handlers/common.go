// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/danielhkuo/linkcard/middleware"
	"github.com/danielhkuo/linkcard/models"
)

// timestamp is the current time as stored in the database: UTC, without
// the monotonic reading, at the precision postgres keeps.
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// currentUser returns the session user, writing a 401 if there is none
func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
	}
	return userID, ok
}

// profileIDForUser returns sql.ErrNoRows when the user has no profile yet
func profileIDForUser(db *sql.DB, userID string) (string, error) {
	var profileID string
	err := db.QueryRow("SELECT id FROM profile WHERE user_id = $1", userID).Scan(&profileID)
	return profileID, err
}

const profileColumns = `id, user_id, name, title, handle, status, contact_text,
	avatar_url, mini_avatar_url, icon_url, grain_url, behind_gradient, inner_gradient,
	show_behind_gradient, enable_tilt, show_user_info, card_radius, bio, theme, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Title, &p.Handle, &p.Status, &p.ContactText,
		&p.AvatarURL, &p.MiniAvatarURL, &p.IconURL, &p.GrainURL, &p.BehindGradient, &p.InnerGradient,
		&p.ShowBehindGradient, &p.EnableTilt, &p.ShowUserInfo, &p.CardRadius, &p.Bio, &p.Theme, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
