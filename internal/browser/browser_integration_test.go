package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

// Requires a local Chrome/Chromium install. Enable with:
//
//	ATH_EVENTS_BROWSER_TEST=1 go test ./internal/browser/
func TestChromeSnapshot(t *testing.T) {
	if os.Getenv("ATH_EVENTS_BROWSER_TEST") == "" {
		t.Skip("set ATH_EVENTS_BROWSER_TEST to run browser integration tests")
	}

	const page = `<!DOCTYPE html>
<html><body>
<div class="partition">
  <h2 class="separator-title"><span>FEBRUARY 25, 2026</span></h2>
  <a class="product-item" href="/en/poetry-night">
    <div class="product-item__name">Poetry Night</div>
  </a>
</div>
</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	html, err := NewChrome().Snapshot(ctx, srv.URL)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if !strings.Contains(html, "Poetry Night") {
		t.Errorf("snapshot missing page content:\n%s", html)
	}
	if !strings.Contains(html, `class="product-item"`) {
		t.Errorf("snapshot missing event card markup")
	}
}

func TestChromeSnapshotNavigateError(t *testing.T) {
	if os.Getenv("ATH_EVENTS_BROWSER_TEST") == "" {
		t.Skip("set ATH_EVENTS_BROWSER_TEST to run browser integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := NewChrome().Snapshot(ctx, "http://127.0.0.1:1/nope")
	if err == nil {
		t.Fatal("expected an error for an unreachable URL")
	}
}
