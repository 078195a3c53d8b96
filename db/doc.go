// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Connecting

Open selects the driver from the configured type and pings it:

	conn, err := db.Open(db.TypeSQLite, "file:linkcard.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

sqlite connections get foreign keys turned on and are limited to a single
open connection.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: accounts with bcrypt password hashes
  - profile: one card per user, unique handle
  - link: outbound links, ordered by position

# Relationships

	users 1──1 profile
	profile 1──* link

All foreign keys use ON DELETE CASCADE.

# Errors

IsUniqueViolation recognises duplicate-key errors from both lib/pq
(SQLSTATE 23505) and sqlite (SQLITE_CONSTRAINT_UNIQUE / PRIMARYKEY).
*/
package db
