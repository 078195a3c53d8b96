// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the linkcard API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AccountHandler: Registration, login and logout
  - ProfileHandler: The owner's card profile and image uploads
  - LinkHandler: The owner's link list
  - PublicHandler: Public card pages and card descriptors
  - HealthHandler: Liveness and database checks

Handlers are created via constructor functions that accept *sql.DB and Config:

	linkHandler := handlers.NewLinkHandler(db, cfg)

Profile and public handlers also take the live *cardconfig.Store so a
reloaded card.yaml applies to the next request.

# Accounts

	POST /auth/register → Register (creates the account and a session)
	POST /auth/login    → Login
	POST /auth/logout   → Logout (clears the cookie)
	GET  /auth/me       → Me

Dashboard operations require a session, either the linkcard_session cookie
or an Authorization: Bearer header. The router wraps them in
middleware.RequireSession and handlers read the user with
middleware.UserID.

# Profile

	GET  /api/profile               → GetProfile ({} before the first save)
	POST /api/profile               → SaveProfile (create or replace)
	POST /api/profile/images/{kind} → UploadImage

Empty text fields and omitted toggles take the card.yaml defaults. Handles
are lowercased with any leading @ removed. Uploads are decoded, scaled to
uploads.max_dimension and stored as WebP under the upload directory.

# Links

	GET    /api/links      → ListLinks
	POST   /api/links      → CreateLink (appends when order is omitted)
	PUT    /api/links/{id} → UpdateLink
	DELETE /api/links/{id} → DeleteLink (also accepts ?id=)

# Public Card

	GET /{handle}           → GetPage (HTML in the resting pose)
	GET /api/cards/{handle} → GetCard (JSON CardDescriptor)
*/
package handlers
