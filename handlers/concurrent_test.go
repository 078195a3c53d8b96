// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/linkcard/cardconfig"
	"github.com/danielhkuo/linkcard/models"
	"github.com/danielhkuo/linkcard/testutil"
)

// TestConcurrentLinkCreation verifies that links created at the same time
// all land on the profile
func TestConcurrentLinkCreation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewLinkHandler(db, testutil.GetTestConfig(t))
	userID, _ := testutil.CreateTestUser(t, db, "owner@example.com")
	profileID := testutil.CreateTestProfile(t, db, userID, "owner")

	numLinks := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numLinks; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/api/links", models.CreateLinkRequest{
				URL:   fmt.Sprintf("https://example.com/%d", idx),
				Type:  "website",
				Order: &idx,
			}, nil)
			w := httptest.NewRecorder()

			handler.CreateLink(w, withUser(req, userID))

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numLinks {
		t.Errorf("Expected %d successful creations, got %d", numLinks, successCount.Load())
	}

	var count int
	db.QueryRow("SELECT COUNT(*) FROM link WHERE profile_id = $1", profileID).Scan(&count)
	if count != numLinks {
		t.Errorf("Expected %d links in database, got %d", numLinks, count)
	}
}

// TestConcurrentHandleClaims verifies that when several users race for the
// same handle exactly one of them gets it
func TestConcurrentHandleClaims(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewProfileHandler(db, testutil.GetTestConfig(t), cardconfig.NewStore(cardconfig.Default()))

	numUsers := 8
	userIDs := make([]string, numUsers)
	for i := range userIDs {
		userIDs[i], _ = testutil.CreateTestUser(t, db, fmt.Sprintf("racer%d@example.com", i))
	}

	var okCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for _, userID := range userIDs {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/api/profile", validProfileRequest("popular"), nil)
			w := httptest.NewRecorder()

			handler.SaveProfile(w, withUser(req, userID))

			switch w.Code {
			case http.StatusOK:
				okCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			default:
				t.Errorf("Unexpected status %d: %s", w.Code, w.Body.String())
			}
		}(userID)
	}

	wg.Wait()

	if okCount.Load() != 1 {
		t.Errorf("Expected exactly 1 winner, got %d", okCount.Load())
	}
	if int(conflictCount.Load()) != numUsers-1 {
		t.Errorf("Expected %d conflicts, got %d", numUsers-1, conflictCount.Load())
	}

	var count int
	db.QueryRow("SELECT COUNT(*) FROM profile WHERE handle = $1", "popular").Scan(&count)
	if count != 1 {
		t.Errorf("Expected 1 profile with the handle, got %d", count)
	}
}
