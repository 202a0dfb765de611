package liveselect

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goliatone/go-liveselect/pkg/renderers/vanilla"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath("/admin"); got != "/admin/api/liveselect" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("admin"); got != "/admin/api/liveselect" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("/admin/", WithRoutePath("api/ls/")); got != "/admin/api/ls" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func TestRegisterRoutes_RegistersHandler(t *testing.T) {
	var colors []any
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "/admin", WithForm(newColorsForm(t, &colors)))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pattern != "/admin/api/liveselect" {
		t.Fatalf("unexpected registered pattern: %q", pattern)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, postForm(pattern+"/colors/toggle", url.Values{"value": {"3"}}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if len(colors) != 1 {
		t.Fatalf("expected one bound value, got %v", colors)
	}
}

func TestComponent_RendersHTMLWithMountedEndpoint(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("vanilla renderer: %v", err)
	}

	var colors []any
	component := New(WithForm(newColorsForm(t, &colors)), WithRenderer(renderer))
	mux := http.NewServeMux()
	pattern, err := component.RegisterRoutes(mux, "/admin")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, pattern+"/colors", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected HTML content-type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `action="/admin/api/liveselect/colors/toggle"`) {
		t.Fatalf("expected toggle endpoint in markup, got:\n%s", rec.Body.String())
	}
}

func TestComponent_NilReceiverUsesDefaults(t *testing.T) {
	var c *Component
	if got := c.Options().RoutePath; got != "/api/liveselect" {
		t.Fatalf("unexpected default route path: %q", got)
	}
}
