package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "sublevel/internal/platform/errors"
	phttp "sublevel/internal/platform/net/http"
)

func TestGetPost_Register(t *testing.T) {
	r := &fakeRouter{}
	Get(r, "/keys", func(*http.Request) (any, error) { return nil, nil })
	Post(r, "/features", func(*http.Request) (any, error) { return nil, nil })

	if len(r.verbCalls) != 2 {
		t.Fatalf("expected 2 registrations, got %d", len(r.verbCalls))
	}
	if c := r.verbCalls[0]; c.verb != "GET" || c.path != "/keys" || c.ph == nil {
		t.Fatalf("unexpected first registration %s %s", c.verb, c.path)
	}
	if c := r.verbCalls[1]; c.verb != "POST" || c.path != "/features" || c.ph == nil {
		t.Fatalf("unexpected second registration %s %s", c.verb, c.path)
	}
}

func TestCall_Envelope(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(*http.Request) (any, error)
		status int
		data   string
	}{
		{
			name:   "value wrapped in 200",
			fn:     func(*http.Request) (any, error) { return map[string]int{"n": 1}, nil },
			status: http.StatusOK,
			data:   `{"n":1}`,
		},
		{
			name:   "response passed through",
			fn:     func(*http.Request) (any, error) { return phttp.Created("id-1"), nil },
			status: http.StatusCreated,
			data:   `"id-1"`,
		},
		{
			name:   "coded error mapped",
			fn:     func(*http.Request) (any, error) { return nil, perr.NotFoundf("analysis %s", "x") },
			status: http.StatusNotFound,
		},
		{
			name:   "invalid argument mapped",
			fn:     func(*http.Request) (any, error) { return nil, perr.InvalidArgf("limit") },
			status: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			call(tc.fn)(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.status, rec.Body.String())
			}
			var env struct {
				StatusCode int             `json:"status_code"`
				Error      string          `json:"error"`
				Data       json.RawMessage `json:"data"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.StatusCode != tc.status {
				t.Fatalf("envelope status = %d", env.StatusCode)
			}
			if tc.data != "" && string(env.Data) != tc.data {
				t.Fatalf("data = %s, want %s", env.Data, tc.data)
			}
			if tc.data == "" && env.Error == "" {
				t.Fatalf("expected error message in %s", rec.Body.String())
			}
		})
	}
}
