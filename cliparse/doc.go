// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type (sqlite or postgres)
	--session-secret Session signing secret
	--upload-dir     Directory for uploaded images
	--card-config    Card configuration YAML file
	--base-url       Public base URL
	--env-file       Env file to load (default .env)

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p             (default 3318)
	DATABASE_URL   → -d             (default file:linkcard.db for sqlite)
	DATABASE_TYPE  → -t             (default sqlite)
	SESSION_SECRET → --session-secret
	UPLOAD_DIR     → --upload-dir   (default uploads)
	CARD_CONFIG    → --card-config  (default card.yaml)
	BASE_URL       → --base-url

CLI flags take precedence over environment variables. The env file is
loaded with godotenv before the environment is read; it never overrides a
variable that is already set, and a missing file is ignored.

# Validation

ParseFlags returns an error if:

  - SESSION_SECRET is missing
  - PORT is not a number
  - the database type is not sqlite or postgres
  - postgres is selected without DATABASE_URL
*/
package cliparse
