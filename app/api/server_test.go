package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nyacktoday/nyack-events/app/scrape"
)

func testServer() http.Handler {
	orchestrator := scrape.NewOrchestrator(nil, nil, nil, nil)
	handler := NewHandler(nil, nil, nil, orchestrator)
	return NewServer(handler, "scraper-key", "admin-secret")
}

func requestStatus(t *testing.T, server http.Handler, method, path string, headers map[string]string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder.Code
}

func TestScrapeAuth_RejectsMissingCredentials(t *testing.T) {
	server := testServer()

	if status := requestStatus(t, server, "POST", "/api/scrape", nil); status != http.StatusUnauthorized {
		t.Errorf("Expected 401 without credentials, got %d", status)
	}
}

func TestScrapeAuth_RejectsWrongCredentials(t *testing.T) {
	server := testServer()

	headers := map[string]string{"X-Scraper-Key": "wrong"}
	if status := requestStatus(t, server, "POST", "/api/scrape", headers); status != http.StatusUnauthorized {
		t.Errorf("Expected 401 with wrong key, got %d", status)
	}

	headers = map[string]string{"X-Admin-Password": "wrong"}
	if status := requestStatus(t, server, "POST", "/api/scrape", headers); status != http.StatusUnauthorized {
		t.Errorf("Expected 401 with wrong password, got %d", status)
	}
}

func TestScrapeAuth_AcceptsEitherCredential(t *testing.T) {
	server := testServer()

	headers := map[string]string{"X-Scraper-Key": "scraper-key"}
	if status := requestStatus(t, server, "GET", "/api/scrape", headers); status != http.StatusOK {
		t.Errorf("Expected 200 with scraper key, got %d", status)
	}

	headers = map[string]string{"X-Admin-Password": "admin-secret"}
	if status := requestStatus(t, server, "GET", "/api/scrape", headers); status != http.StatusOK {
		t.Errorf("Expected 200 with admin password, got %d", status)
	}
}

func TestAdminAuth_ScraperKeyNotAccepted(t *testing.T) {
	server := testServer()

	// The scraper key must not open the admin surface.
	headers := map[string]string{"X-Scraper-Key": "scraper-key"}
	if status := requestStatus(t, server, "GET", "/api/admin/scrapers", headers); status != http.StatusUnauthorized {
		t.Errorf("Expected 401 for scraper key on admin route, got %d", status)
	}
}

func TestCredentialMatches_EmptyNeverMatches(t *testing.T) {
	if credentialMatches("", "") {
		t.Error("Empty header must not match empty configuration")
	}
	if credentialMatches("", "secret") {
		t.Error("Empty header must not match")
	}
	if credentialMatches("secret", "") {
		t.Error("Unconfigured credential must not match")
	}
	if !credentialMatches("secret", "secret") {
		t.Error("Matching credential should pass")
	}
}
