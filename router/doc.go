// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the linkcard server.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, cards)

cards is the live card configuration; handlers read it per request, so a
reloaded card.yaml takes effect without a restart.

# Endpoints

Health:

	GET /health     - Liveness
	GET /health/db  - Database ping

Accounts:

	POST /auth/register - Create account and start a session
	POST /auth/login    - Start a session
	POST /auth/logout   - Clear the session cookie
	GET  /auth/me       - Current account (session)

Profile (session):

	GET  /api/profile               - Caller's profile or {}
	POST /api/profile               - Create or replace profile
	POST /api/profile/images/{kind} - Upload avatar, mini-avatar, icon or grain

Links (session):

	GET    /api/links      - List in display order
	POST   /api/links      - Add link
	PUT    /api/links/{id} - Update link
	DELETE /api/links/{id} - Delete link (also DELETE /api/links?id=)

Public:

	GET /{handle}           - Card page (HTML)
	GET /api/cards/{handle} - Card descriptor (JSON)
	GET /uploads/...        - Uploaded images
*/
package router
