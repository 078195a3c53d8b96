// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: email, password, name
  - LoginRequest: email, password
  - SaveProfileRequest: the dashboard profile form
  - CreateLinkRequest: url, type, order
  - UpdateLinkRequest: url, type, order (all optional)

# Response Types

Types for JSON responses:

  - SessionResponse: token, expires_at, user
  - UploadImageResponse: kind, url, width, height
  - CardDescriptor: props, style_vars, resting_pose, animation, palette, links
  - HealthResponse: status, database
  - MessageResponse: message
  - ErrorResponse: error, message

# Domain Types

  - User: account with bcrypt password hash (never serialised)
  - Profile: one card per user, addressed publicly by handle
  - Link: ordered outbound link on a profile

# Image Kinds

	ImageAvatar     = "avatar"
	ImageMiniAvatar = "mini-avatar"
	ImageIcon       = "icon"
	ImageGrain      = "grain"
*/
package models
