// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/danielhkuo/linkcard/cardconfig"
	"github.com/danielhkuo/linkcard/cliparse"
	"github.com/danielhkuo/linkcard/handlers"
	"github.com/danielhkuo/linkcard/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, cards *cardconfig.Store) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	accountHandler := handlers.NewAccountHandler(db, cfg)
	profileHandler := handlers.NewProfileHandler(db, cfg, cards)
	linkHandler := handlers.NewLinkHandler(db, cfg)
	publicHandler := handlers.NewPublicHandler(db, cfg, cards)

	// Dashboard endpoints need a session
	session := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireSession(cfg.SessionSecret, h))
	}

	// Health checks
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/db", healthHandler.HealthDB)

	// Accounts
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(accountHandler.Login))
	mux.HandleFunc("POST /auth/logout", middleware.WithLogging(accountHandler.Logout))
	mux.HandleFunc("GET /auth/me", session(accountHandler.Me))

	// Profile (owner)
	mux.HandleFunc("GET /api/profile", session(profileHandler.GetProfile))
	mux.HandleFunc("POST /api/profile", session(profileHandler.SaveProfile))
	mux.HandleFunc("POST /api/profile/images/{kind}", session(profileHandler.UploadImage))

	// Links (owner)
	mux.HandleFunc("GET /api/links", session(linkHandler.ListLinks))
	mux.HandleFunc("POST /api/links", session(linkHandler.CreateLink))
	mux.HandleFunc("DELETE /api/links", session(linkHandler.DeleteLink))
	mux.HandleFunc("PUT /api/links/{id}", session(linkHandler.UpdateLink))
	mux.HandleFunc("DELETE /api/links/{id}", session(linkHandler.DeleteLink))

	// Public card
	mux.HandleFunc("GET /api/cards/{handle}", middleware.WithLogging(publicHandler.GetCard))
	mux.HandleFunc("GET /{handle}", middleware.WithLogging(publicHandler.GetPage))

	// Uploaded images
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", noDirListing(http.FileServer(http.Dir(cfg.UploadDir)))))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("linkcard API v1"))
	})

	return mux
}

// noDirListing hides directory indexes from the file server
func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
