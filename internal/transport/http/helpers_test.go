package http

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestContext(t *testing.T, target string) echo.Context {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec)
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "/?", 20, 0},
		{"explicit", "/?limit=50&offset=10", 50, 10},
		{"garbage falls back", "/?limit=abc&offset=xyz", 20, 0},
		{"negative falls back", "/?limit=-5&offset=-2", 20, 0},
		{"zero limit falls back", "/?limit=0", 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t, tt.target)
			limit, offset := parsePagination(c, 20, 0)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Fatalf("parsePagination(%s) = %d/%d, want %d/%d", tt.target, limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestParseUUIDParam(t *testing.T) {
	c := newTestContext(t, "/")
	c.SetParamNames("id")
	c.SetParamValues("1f2a9e1e-9f3c-4f52-9c1f-0d9f9f3c4f52")
	if _, err := parseUUIDParam(c, "id"); err != nil {
		t.Fatalf("expected valid uuid, got %v", err)
	}

	c.SetParamValues("not-a-uuid")
	if _, err := parseUUIDParam(c, "id"); err == nil {
		t.Fatalf("expected error for malformed uuid")
	}
}

func TestSanitizeBodyRedactsSecrets(t *testing.T) {
	body := []byte(`{"email":"t@example.com","password":"hunter2","profile":{"reset_token":"abc"}}`)
	result := sanitizeBody(body, "application/json")

	data, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected sanitized map, got %T", result)
	}
	if data["password"] != "redacted" {
		t.Fatalf("expected password redacted, got %v", data["password"])
	}
	if data["email"] != "t@example.com" {
		t.Fatalf("expected email kept, got %v", data["email"])
	}
	nested, ok := data["profile"].(map[string]any)
	if !ok || nested["reset_token"] != "redacted" {
		t.Fatalf("expected nested token redacted, got %v", data["profile"])
	}
}

func TestSanitizeBodyNonJSON(t *testing.T) {
	if got := sanitizeBody(nil, "application/json"); got != nil {
		t.Fatalf("expected nil for empty body, got %v", got)
	}
	if got := sanitizeBody([]byte("field=1"), "multipart/form-data; boundary=x"); got != "multipart" {
		t.Fatalf("expected multipart marker, got %v", got)
	}
	if got := sanitizeBody([]byte{0xff, 0xfe, 0x00}, "application/octet-stream"); got != "binary" {
		t.Fatalf("expected binary marker, got %v", got)
	}
	if got := sanitizeBody([]byte("password=hunter2"), "text/plain"); got != "redacted" {
		t.Fatalf("expected plaintext credentials redacted, got %v", got)
	}
}
