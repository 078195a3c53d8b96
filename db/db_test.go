// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestOpenAndCreateSchema(t *testing.T) {
	conn, err := Open(TypeSQLite, "file:"+filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}
	// Safe to call twice
	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema() second call error = %v", err)
	}

	for _, table := range []string{"users", "profile", "link"} {
		var n int
		if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Errorf("table %s not queryable: %v", table, err)
		}
	}
}

func TestUniqueViolationSQLite(t *testing.T) {
	conn, err := Open(TypeSQLite, "file:"+filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if err := CreateSchema(conn); err != nil {
		t.Fatal(err)
	}

	insert := `INSERT INTO users (id, email, name, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := conn.Exec(insert, "u1", "a@example.com", "A", "x", time.Now()); err != nil {
		t.Fatal(err)
	}

	_, err = conn.Exec(insert, "u2", "a@example.com", "B", "x", time.Now())
	if !IsUniqueViolation(err) {
		t.Errorf("duplicate email: IsUniqueViolation(%v) = false", err)
	}

	_, err = conn.Exec(insert, "u1", "b@example.com", "B", "x", time.Now())
	if !IsUniqueViolation(err) {
		t.Errorf("duplicate id: IsUniqueViolation(%v) = false", err)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	conn, err := Open(TypeSQLite, "file:"+filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if err := CreateSchema(conn); err != nil {
		t.Fatal(err)
	}

	_, err = conn.Exec(`INSERT INTO link (id, profile_id, url, type, position, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		"l1", "missing-profile", "https://example.com", "website", 0, time.Now())
	if err == nil {
		t.Error("insert with dangling profile_id succeeded, want foreign key error")
	}
	if IsUniqueViolation(err) {
		t.Error("foreign key error reported as unique violation")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"pq unique", &pq.Error{Code: "23505"}, true},
		{"pq wrapped", errors.Join(errors.New("insert"), &pq.Error{Code: "23505"}), true},
		{"pq foreign key", &pq.Error{Code: "23503"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err); got != tt.want {
				t.Errorf("IsUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpenUnsupportedType(t *testing.T) {
	if _, err := Open("mysql", "whatever"); err == nil {
		t.Error("Open() with unsupported type succeeded")
	}
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"file:a.db", "file:a.db?_pragma=foreign_keys(1)"},
		{"file:a.db?cache=shared", "file:a.db?cache=shared&_pragma=foreign_keys(1)"},
		{"file:a.db?_pragma=foreign_keys(0)", "file:a.db?_pragma=foreign_keys(0)"},
	}
	for _, tt := range tests {
		if got := sqliteDSN(tt.in); got != tt.want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
