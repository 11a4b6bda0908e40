package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "sublevel/internal/platform/errors"
	"sublevel/internal/platform/testkit"
)

func serve(t *testing.T) map[string]any {
	t.Helper()
	rec := httptest.NewRecorder()
	serveDocJSON()(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var spec map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return spec
}

func TestServeDocJSON(t *testing.T) {
	spec := serve(t)
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi = %v", spec["openapi"])
	}
	paths := spec["paths"].(map[string]any)
	for _, p := range []string{"/level/features", "/level/subtitles", "/level/estimate", "/level/keys", "/level/analyses/{id}", "/meta/version"} {
		if _, ok := paths[p]; !ok {
			t.Fatalf("missing path %s", p)
		}
	}
	op := paths["/level/features"].(map[string]any)["post"].(map[string]any)
	resps := op["responses"].(map[string]any)
	for _, code := range []string{"400", "422", "500"} {
		if _, ok := resps[code]; !ok {
			t.Fatalf("default %s not injected", code)
		}
	}
	ex := resps["422"].(map[string]any)["content"].(map[string]any)["application/json"].(map[string]any)["example"].(map[string]any)
	if ex["code"] != float64(perr.ErrorCodeEmptyDocument) || ex["status"] != "Unprocessable Entity" {
		t.Fatalf("422 example = %v", ex)
	}
	schema := spec["components"].(map[string]any)["schemas"].(map[string]any)["ErrorResponse"].(map[string]any)
	if _, ok := schema["properties"].(map[string]any)["field"]; !ok {
		t.Fatalf("ErrorResponse lacks field")
	}
}

func TestEnsureServers(t *testing.T) {
	cases := []struct {
		name string
		in   map[string]any
		want string
	}{
		{"swagger 2", map[string]any{"swagger": "2.0"}, "3.0.3"},
		{"oas 3.1", map[string]any{"openapi": "3.1.0"}, "3.0.3"},
		{"oas 3.0 kept", map[string]any{"openapi": "3.0.1"}, "3.0.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ensureServers(tc.in, "/api/v1")
			if tc.in["openapi"] != tc.want || tc.in["swagger"] != nil {
				t.Fatalf("spec = %v", tc.in)
			}
			if srv := tc.in["servers"].([]any); len(srv) != 1 {
				t.Fatalf("servers = %v", srv)
			}
		})
	}
}

func TestServeDocJSON_BadDoc(t *testing.T) {
	testkit.Swap(t, &docReader, func() string { return "{" })
	rec := httptest.NewRecorder()
	serveDocJSON()(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}
