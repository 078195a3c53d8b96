// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/linkcard/cardconfig"
	"github.com/danielhkuo/linkcard/cardstyle"
	"github.com/danielhkuo/linkcard/cliparse"
	"github.com/danielhkuo/linkcard/middleware"
	"github.com/danielhkuo/linkcard/models"
	"github.com/danielhkuo/linkcard/tilt"
)

//go:embed templates/card.html
var templateFS embed.FS

var cardTemplate = template.Must(template.ParseFS(templateFS, "templates/card.html"))

type PublicHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	cards  *cardconfig.Store
	mobile tilt.MobilePredicate
}

func NewPublicHandler(db *sql.DB, cfg cliparse.Config, cards *cardconfig.Store) *PublicHandler {
	return &PublicHandler{db: db, cfg: cfg, cards: cards, mobile: tilt.DetectMobile}
}

// cardPage is the data behind templates/card.html
type cardPage struct {
	Props         cardstyle.Props
	MiniAvatar    string
	Style         template.CSS
	ThemeColor    string
	Bio           string
	Links         []models.Link
	MemberSince   string
	MotionHint    bool
	DescriptorURL string
}

// GetPage handles GET /{handle}
// Renders the card in its resting pose with the profile's links
func (h *PublicHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	profile, links, ok := h.loadCard(w, r)
	if !ok {
		return
	}

	props := profile.CardProps()
	page := cardPage{
		Props:      props,
		MiniAvatar: cardstyle.MiniAvatar(props),
		// Every value is built by cardstyle or tilt; gradients were
		// validated on save and URLs are quoted.
		Style:       template.CSS(cardstyle.Inline(cardstyle.StaticVars(props), cardstyle.RestingVars())),
		Bio:         profile.Bio,
		Links:       links,
		MemberSince: humanize.Time(profile.CreatedAt),
		// Which input source drives the card is decided on the client; the
		// server can only guess from the user agent.
		MotionHint:    props.EnableTilt && h.mobile(r.UserAgent(), 0, false),
		DescriptorURL: h.cfg.BaseURL + "/api/cards/" + profile.Handle,
	}
	if palette := cardstyle.Palette(props.InnerGradient); len(palette) > 0 {
		page.ThemeColor = palette[0]
	}

	var buf bytes.Buffer
	if err := cardTemplate.Execute(&buf, page); err != nil {
		slog.Error("failed to render card page", "handle", profile.Handle, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// GetCard handles GET /api/cards/{handle}
// Returns everything a client needs to render and animate the card
func (h *PublicHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	profile, links, ok := h.loadCard(w, r)
	if !ok {
		return
	}

	props := profile.CardProps()
	resting, _ := tilt.Compute(0.5, 0.5, 1, 1)

	gradient := props.InnerGradient
	if gradient == "" {
		gradient = cardstyle.DefaultInnerGradient
	}

	middleware.JSONResponse(w, http.StatusOK, models.CardDescriptor{
		Props:       props,
		MiniAvatar:  cardstyle.MiniAvatar(props),
		StyleVars:   append(cardstyle.StaticVars(props), resting.StyleVars()...),
		RestingPose: resting,
		Animation:   h.cards.Current().Animation,
		Palette:     cardstyle.Palette(gradient),
		Links:       links,
	})
}

// loadCard resolves the {handle} path value, writing a 404 when there is
// no such profile
func (h *PublicHandler) loadCard(w http.ResponseWriter, r *http.Request) (models.Profile, []models.Link, bool) {
	handle := strings.ToLower(strings.TrimPrefix(r.PathValue("handle"), "@"))
	if !handlePattern.MatchString(handle) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Profile not found")
		return models.Profile{}, nil, false
	}

	profile, err := scanProfile(h.db.QueryRow(
		"SELECT "+profileColumns+" FROM profile WHERE handle = $1", handle))
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Profile not found")
		return models.Profile{}, nil, false
	}
	if err != nil {
		slog.Error("failed to query profile", "handle", handle, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Profile{}, nil, false
	}

	links, err := listLinks(h.db, profile.ID)
	if err != nil {
		slog.Error("failed to query links", "profile_id", profile.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Profile{}, nil, false
	}

	return profile, links, true
}

type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// HealthDB handles GET /health/db
func (h *HealthHandler) HealthDB(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		middleware.JSONResponse(w, http.StatusServiceUnavailable, models.HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{Status: "ok", Database: "ok"})
}
