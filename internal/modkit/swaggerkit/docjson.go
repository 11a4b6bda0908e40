// Package swaggerkit serves the OpenAPI document and swagger UI
package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"sublevel/internal/platform/config"
	perr "sublevel/internal/platform/errors"
)

//go:embed openapi.json
var openapiDoc string

// docReader is a seam so tests can inject invalid JSON
var docReader = func() string { return openapiDoc }

// defaults every operation gets unless it documents the status itself.
// Codes and messages mirror what the binder and pipeline put on the wire.
var defaults = []struct {
	status  int
	code    perr.ErrorCode
	message string
}{
	{http.StatusBadRequest, perr.ErrorCodeValidation, "text must be at most 4000"},
	{http.StatusUnprocessableEntity, perr.ErrorCodeEmptyDocument, "document has no speech"},
	{http.StatusInternalServerError, perr.ErrorCodePanic, "internal error"},
}

// serveDocJSON serves the embedded spec with servers, error schema and
// default error responses filled in
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		ensureServers(spec, "/api/v1")

		if v := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + v
				}
			}
		}

		ensureErrorSchema(spec)
		for _, d := range defaults {
			addDefaultResponse(spec, d.status, d.code, d.message)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureServers pins the document to OAS 3.0.3, which swagger UI renders,
// and adds a servers entry for url when none is set
func ensureServers(spec map[string]any, url string) {
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// child returns m[key] as a map, creating it when missing
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

// ensureErrorSchema adds the error envelope model when the document lacks it
func ensureErrorSchema(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	str := map[string]any{"type": "string"}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      str,
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       str,
			"field":       str,
			"request_id":  str,
		},
		"required": []any{"status_code", "status"},
	}
}

func addDefaultResponse(spec map[string]any, status int, code perr.ErrorCode, message string) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	text := http.StatusText(status)
	resp := map[string]any{
		"description": text,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": status,
					"status":      text,
					"code":        code,
					"error":       message,
					"request_id":  "579f33bf50b1/abc-000001",
				},
			},
		},
	}
	key := strconv.Itoa(status)
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses := child(op, "responses")
			if _, exists := responses[key]; !exists {
				responses[key] = resp
			}
		}
	}
}
