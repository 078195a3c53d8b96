// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides account credentials and session tokens.

# Passwords

Passwords are hashed with bcrypt:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, attempt)

HashPassword rejects passwords shorter than 8 characters and longer than
72 bytes (bcrypt's input limit).

# Sessions

Session tokens are HMAC-SHA256 signed and stateless:

	token := auth.IssueSession(userID, secret, time.Now())
	userID, err := auth.ParseSession(token, secret, time.Now())

The token carries the user ID and an expiry 30 days out. The signature is
URL-safe base64 without padding, so the token can be stored in a cookie
or sent as a Bearer token unchanged. ParseSession returns ErrInvalidSession
for any tampering and ErrSessionExpired once the expiry has passed.

# ID Generation

Random IDs for database records:

	id := auth.GenerateID() // UUIDv4
*/
package auth
