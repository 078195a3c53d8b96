// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the linkcard server.

linkcard serves "link in bio" pages: one profile card per user, rendered
with a 3D tilt effect, followed by the user's ordered links. Owners manage
their card through a JSON API; visitors load /{handle}.

# Starting the Server

The server requires a session secret; everything else has a default:

	SESSION_SECRET=change-me go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." --session-secret change-me

# Configuration

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:linkcard.db for sqlite)
  - SESSION_SECRET (--session-secret): Secret for session signing (required)
  - UPLOAD_DIR (--upload-dir): Image storage directory (default: uploads)
  - CARD_CONFIG (--card-config): Card YAML, hot reloaded (default: card.yaml)
  - BASE_URL (--base-url): Public URL; https turns on Secure cookies

A .env file is loaded first if present.

# Architecture

  - tilt: Transform Engine, Animation Driver and input source selection
  - cardstyle: Static card style variables and gradient handling
  - cardconfig: card.yaml defaults with hot reload
  - imaging: Upload decoding and WebP encoding
  - handlers: HTTP request handlers (accounts, profile, links, public)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, sessions, JSON helpers
  - models: Request/response types
  - auth: Passwords, session tokens, IDs
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing
  - cmd/cardpreview: Terminal preview of the tilt card

See package documentation for each component.
*/
package main
