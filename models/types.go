// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/danielhkuo/linkcard/cardconfig"
	"github.com/danielhkuo/linkcard/cardstyle"
	"github.com/danielhkuo/linkcard/tilt"
)

// Image kinds accepted by the upload endpoint
const (
	ImageAvatar     = "avatar"
	ImageMiniAvatar = "mini-avatar"
	ImageIcon       = "icon"
	ImageGrain      = "grain"
)

// Request types

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SaveProfileRequest is the dashboard profile form. Pointer flags let the
// form omit a toggle and keep the configured default.
type SaveProfileRequest struct {
	Name               string `json:"name"`
	Title              string `json:"title"`
	Handle             string `json:"handle"`
	Status             string `json:"status"`
	ContactText        string `json:"contact_text"`
	AvatarURL          string `json:"avatar_url"`
	MiniAvatarURL      string `json:"mini_avatar_url"`
	IconURL            string `json:"icon_url"`
	GrainURL           string `json:"grain_url"`
	BehindGradient     string `json:"behind_gradient"`
	InnerGradient      string `json:"inner_gradient"`
	ShowBehindGradient *bool  `json:"show_behind_gradient"`
	EnableTilt         *bool  `json:"enable_tilt"`
	ShowUserInfo       *bool  `json:"show_user_info"`
	CardRadius         *int   `json:"card_radius"`
	Bio                string `json:"bio"`
	// Theme is an opaque dashboard theme name, stored as given
	Theme              string `json:"theme"`
}

type CreateLinkRequest struct {
	URL   string `json:"url"`
	Type  string `json:"type"`
	Order *int   `json:"order"`
}

type UpdateLinkRequest struct {
	URL   *string `json:"url"`
	Type  *string `json:"type"`
	Order *int    `json:"order"`
}

// Response types

type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

type UploadImageResponse struct {
	Kind   string `json:"kind"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// CardDescriptor is everything a client needs to render and animate a
// public card.
type CardDescriptor struct {
	Props       cardstyle.Props       `json:"props"`
	MiniAvatar  string                `json:"mini_avatar_url"`
	StyleVars   []tilt.StyleVar       `json:"style_vars"`
	RestingPose tilt.VisualParameters `json:"resting_pose"`
	Animation   cardconfig.Animation  `json:"animation"`
	Palette     []string              `json:"palette"`
	Links       []Link                `json:"links"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Domain types

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"-"` // bcrypt hash, never exposed
	CreatedAt time.Time `json:"created_at"`
}

type Profile struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	Name               string    `json:"name"`
	Title              string    `json:"title"`
	Handle             string    `json:"handle"`
	Status             string    `json:"status"`
	ContactText        string    `json:"contact_text"`
	AvatarURL          string    `json:"avatar_url"`
	MiniAvatarURL      string    `json:"mini_avatar_url"`
	IconURL            string    `json:"icon_url"`
	GrainURL           string    `json:"grain_url"`
	BehindGradient     string    `json:"behind_gradient"`
	InnerGradient      string    `json:"inner_gradient"`
	ShowBehindGradient bool      `json:"show_behind_gradient"`
	EnableTilt         bool      `json:"enable_tilt"`
	ShowUserInfo       bool      `json:"show_user_info"`
	CardRadius         int       `json:"card_radius"`
	Bio                string    `json:"bio"`
	Theme              string    `json:"theme"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CardProps converts the stored profile into card inputs.
func (p Profile) CardProps() cardstyle.Props {
	return cardstyle.Props{
		Name:               p.Name,
		Title:              p.Title,
		Handle:             p.Handle,
		Status:             p.Status,
		ContactText:        p.ContactText,
		AvatarURL:          p.AvatarURL,
		MiniAvatarURL:      p.MiniAvatarURL,
		IconURL:            p.IconURL,
		GrainURL:           p.GrainURL,
		BehindGradient:     p.BehindGradient,
		InnerGradient:      p.InnerGradient,
		ShowBehindGradient: p.ShowBehindGradient,
		EnableTilt:         p.EnableTilt,
		ShowUserInfo:       p.ShowUserInfo,
		CardRadius:         p.CardRadius,
	}
}

type Link struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	URL       string    `json:"url"`
	Type      string    `json:"type"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
