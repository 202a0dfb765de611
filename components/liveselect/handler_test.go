package liveselect

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-liveselect/pkg/host"
	"github.com/goliatone/go-liveselect/pkg/liveselect"
	"github.com/goliatone/go-liveselect/pkg/testsupport"
)

type handlerResponse struct {
	Data []Option `json:"data"`
}

type widgetResponse struct {
	Model      string            `json:"model"`
	SearchText string            `json:"searchText"`
	Selected   []map[string]any  `json:"selected"`
	Sorted     []map[string]any  `json:"sortedOptions"`
	Errors     map[string]string `json:"errors"`
	FormErrors []string          `json:"formErrors"`
}

func newColorsForm(t *testing.T, target *[]any, opts ...liveselect.Option) *host.Form {
	t.Helper()
	form := host.NewForm("profile")
	host.BindValues(form, "colors", "value", target)
	if _, err := form.Mount(testsupport.ColorConfig("colors", true), opts...); err != nil {
		t.Fatalf("mount: %v", err)
	}
	return form
}

func decodeWidget(t *testing.T, rec *httptest.ResponseRecorder) widgetResponse {
	t.Helper()
	var payload widgetResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return payload
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandler_ToggleUpdatesBoundField(t *testing.T) {
	var colors []any
	h := NewHandler(WithForm(newColorsForm(t, &colors)))

	for _, value := range []string{"2", "4"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, postForm("/colors/toggle", url.Values{"value": {value}}))
		if rec.Code != http.StatusOK {
			t.Fatalf("toggle %s: expected status 200, got %d: %s", value, rec.Code, rec.Body.String())
		}
	}

	if diff := cmp.Diff([]any{2, 4}, colors); diff != "" {
		t.Fatalf("bound values mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_ToggleResponseRendersSelection(t *testing.T) {
	var colors []any
	h := NewHandler(WithForm(newColorsForm(t, &colors)))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/colors/toggle", url.Values{"value": {"1"}}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}

	payload := decodeWidget(t, rec)
	if payload.Model != "colors" {
		t.Fatalf("expected model colors, got %q", payload.Model)
	}
	want := []map[string]any{{"value": float64(1), "label": "Red"}}
	if diff := cmp.Diff(want, payload.Selected); diff != "" {
		t.Fatalf("selected mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_ToggleErrors(t *testing.T) {
	var colors []any
	h := NewHandler(WithForm(newColorsForm(t, &colors, liveselect.WithMissPolicy(liveselect.MissReject))))

	tests := []struct {
		name string
		req  *http.Request
		code int
	}{
		{"missing value", postForm("/colors/toggle", url.Values{}), http.StatusBadRequest},
		{"unknown value", postForm("/colors/toggle", url.Values{"value": {"99"}}), http.StatusUnprocessableEntity},
		{"unknown widget", postForm("/sizes/toggle", url.Values{"value": {"1"}}), http.StatusNotFound},
		{"wrong method", httptest.NewRequest(http.MethodGet, "/colors/toggle", nil), http.StatusMethodNotAllowed},
		{"unknown action", postForm("/colors/explode", url.Values{}), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, tt.req)
			if rec.Code != tt.code {
				t.Fatalf("expected status %d, got %d", tt.code, rec.Code)
			}
		})
	}
	if len(colors) != 0 {
		t.Fatalf("failed toggles should not write the field, got %v", colors)
	}
}

func TestHandler_UnboundFieldIsServerError(t *testing.T) {
	form := host.NewForm("profile")
	if _, err := form.Mount(testsupport.ColorConfig("colour", false)); err != nil {
		t.Fatalf("mount: %v", err)
	}
	h := NewHandler(WithForm(form))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/colour/toggle", url.Values{"value": {"1"}}))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestHandler_SearchRanksOptions(t *testing.T) {
	var colors []any
	h := NewHandler(WithForm(newColorsForm(t, &colors)))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/colors/search?q=Bre", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	payload := decodeWidget(t, rec)
	if payload.SearchText != "Bre" {
		t.Fatalf("expected search text to stick, got %q", payload.SearchText)
	}
	labels := make([]string, 0, len(payload.Sorted))
	for _, option := range payload.Sorted {
		labels = append(labels, option["label"].(string))
	}
	if diff := cmp.Diff([]string{"Bread", "Blue", "Green", "Red"}, labels); diff != "" {
		t.Fatalf("sorted labels mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_OptionsSearchAndLimitClamped(t *testing.T) {
	var colors []any
	h := NewHandler(WithForm(newColorsForm(t, &colors)), WithMaxLimit(2))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/colors/options?q=Bre&limit=10", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := []Option{
		{Value: float64(3), Label: "Bread"},
		{Value: float64(2), Label: "Blue"},
	}
	if diff := cmp.Diff(want, payload.Data); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	// the options endpoint must not move the widget's own search text
	form, _ := h.(*handler).opts.Forms(nil)
	widget, _ := form.Widget("colors")
	if widget.SearchText() != "" {
		t.Fatalf("options search leaked into widget state: %q", widget.SearchText())
	}
}

func TestHandler_OptionsCustomParams(t *testing.T) {
	var colors []any
	h := NewHandler(
		WithForm(newColorsForm(t, &colors)),
		WithSearchParam("search"),
		WithLimitParam("l"),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/colors/options?search=Green&l=1", nil))

	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Data) != 1 || payload.Data[0].Label != "Green" {
		t.Fatalf("unexpected options: %#v", payload.Data)
	}
}

func TestHandler_ErrorsPayloadReachesWidgets(t *testing.T) {
	var colors []any
	h := NewHandler(WithForm(newColorsForm(t, &colors)))

	body := `{"/body/colors":["Pick a color.","Really."],"non_field_errors":["Try again later."]}`
	req := httptest.NewRequest(http.MethodPost, "/errors", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/colors", nil))
	payload := decodeWidget(t, rec)

	if diff := cmp.Diff(map[string]string{"colors": "Pick a color."}, payload.Errors); diff != "" {
		t.Fatalf("widget errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Try again later."}, payload.FormErrors); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_ErrorsRejectsBadPayload(t *testing.T) {
	var colors []any
	h := NewHandler(WithForm(newColorsForm(t, &colors)))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/errors", strings.NewReader("{")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandler_GuardBlocksRequests(t *testing.T) {
	var colors []any
	h := NewHandler(
		WithForm(newColorsForm(t, &colors)),
		WithGuard(func(*http.Request) error {
			return StatusError{Code: http.StatusUnauthorized, Err: errors.New("nope")}
		}),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/colors/toggle", url.Values{"value": {"1"}}))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	if len(colors) != 0 {
		t.Fatalf("guarded toggle should not write the field")
	}
}

func TestHandler_MissingFormIsServerError(t *testing.T) {
	h := NewHandler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/colors", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestHandler_ReservedAndEscapedModelNames(t *testing.T) {
	form := host.NewForm("profile")
	var errorsField, nested []any
	host.BindValues(form, "errors", "value", &errorsField)
	host.BindValues(form, "a/b", "value", &nested)
	for _, name := range []string{"errors", "a/b"} {
		if _, err := form.Mount(testsupport.ColorConfig(name, true)); err != nil {
			t.Fatalf("mount %s: %v", name, err)
		}
	}
	h := NewHandler(WithForm(form))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/errors", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("render errors widget: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if payload := decodeWidget(t, rec); payload.Model != "errors" {
		t.Fatalf("expected model errors, got %q", payload.Model)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/errors/toggle", url.Values{"value": {"1"}}))
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle errors widget: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, postForm("/a%2Fb/toggle", url.Values{"value": {"2"}}))
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle a/b widget: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if payload := decodeWidget(t, rec); payload.Model != "a/b" {
		t.Fatalf("expected model a/b, got %q", payload.Model)
	}

	if diff := cmp.Diff([]any{1}, errorsField); diff != "" {
		t.Fatalf("errors field mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{2}, nested); diff != "" {
		t.Fatalf("a/b field mismatch (-want +got):\n%s", diff)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/errors", strings.NewReader(`{"errors":["Pick one."]}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("error relay: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandler_ErrorsRejectsOversizedPayload(t *testing.T) {
	var colors []any
	h := NewHandler(WithForm(newColorsForm(t, &colors)))

	body := `{"colors":["` + strings.Repeat("a", maxErrorPayload) + `"]}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/errors", strings.NewReader(body)))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", rec.Code)
	}
}
