package http

import (
	"bytes"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"sublevel/internal/core/features"
	"sublevel/internal/core/nlp"
	"sublevel/internal/core/vocab"
	phttp "sublevel/internal/platform/net/http"
	"sublevel/internal/services/level/service"

	"github.com/go-chi/chi/v5"
)

func testServer(t *testing.T) stdhttp.Handler {
	t.Helper()
	v := vocab.New([]vocab.Entry{
		{Word: "hello", Level: vocab.A1},
		{Word: "world", Level: vocab.A1},
		{Word: "fine", Level: vocab.A2},
	})
	svc := service.New(service.Deps{Vocab: v, Tagger: nlp.NewSimpleTagger(nil)},
		service.Config{Options: features.DefaultOptions(), Workers: 2, Tagger: "simple"})

	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	r.Route("/level", func(rr phttp.Router) { Register(rr, svc) })
	return mux
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Error      string          `json:"error"`
	Data       json.RawMessage `json:"data"`
}

func do(t *testing.T, h stdhttp.Handler, method, path string, body []byte) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", method, path, err, rec.Body.String())
		}
	}
	return rec.Code, env
}

func TestFeatures(t *testing.T) {
	h := testServer(t)
	body := []byte(`{"name":"pilot.srt","entries":[
		{"start_ms":1000,"end_ms":3000,"text":"Hello world!"},
		{"start_ms":4000,"end_ms":6000,"text":"JOHN: I am fine."}]}`)

	code, env := do(t, h, stdhttp.MethodPost, "/level/features", body)
	if code != stdhttp.StatusOK {
		t.Fatalf("status = %d (%s)", code, env.Error)
	}
	var out struct {
		Lines    int                `json:"lines"`
		Features map[string]float64 `json:"features"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Lines != 2 || out.Features["lemmas_count"] != 3 || out.Features["A1"] != 2 {
		t.Fatalf("unexpected payload %s", env.Data)
	}
}

func TestFeatures_BadInput(t *testing.T) {
	h := testServer(t)
	cases := []struct {
		name string
		body string
		want int
	}{
		{"empty entries", `{"entries":[]}`, stdhttp.StatusBadRequest},
		{"unknown field", `{"entries":[{"text":"hi"}],"bogus":1}`, stdhttp.StatusBadRequest},
		{"bad schema", `{"entries":[{"text":"hi"}],"options":{"schema":"seven"}}`, stdhttp.StatusBadRequest},
		{"not json", `hello`, stdhttp.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := do(t, h, stdhttp.MethodPost, "/level/features", []byte(tc.body))
			if code != tc.want {
				t.Fatalf("status = %d, want %d", code, tc.want)
			}
		})
	}
}

func TestSubtitles(t *testing.T) {
	h := testServer(t)
	srt := []byte("1\n00:00:01,000 --> 00:00:03,000\nHello world!\n")

	code, env := do(t, h, stdhttp.MethodPost, "/level/subtitles?name=pilot.srt", srt)
	if code != stdhttp.StatusOK {
		t.Fatalf("status = %d (%s)", code, env.Error)
	}

	code, _ = do(t, h, stdhttp.MethodPost, "/level/subtitles?name=x.srt", []byte("   "))
	if code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("blank body status = %d", code)
	}
}

func TestEstimate_NoModel(t *testing.T) {
	h := testServer(t)
	code, _ := do(t, h, stdhttp.MethodPost, "/level/estimate", []byte(`{"entries":[{"start_ms":0,"end_ms":1000,"text":"hello"}]}`))
	if code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("status = %d", code)
	}
}

func TestKeys(t *testing.T) {
	h := testServer(t)
	for _, tc := range []struct {
		query string
		want  int
	}{
		{"", 130},
		{"?schema=five", 122},
	} {
		code, env := do(t, h, stdhttp.MethodGet, "/level/keys"+tc.query, nil)
		if code != stdhttp.StatusOK {
			t.Fatalf("status = %d", code)
		}
		var keys []string
		if err := json.Unmarshal(env.Data, &keys); err != nil {
			t.Fatal(err)
		}
		if len(keys) != tc.want {
			t.Fatalf("%q: %d keys, want %d", tc.query, len(keys), tc.want)
		}
	}
}

func TestAnalyses_StoreDisabled(t *testing.T) {
	h := testServer(t)
	code, _ := do(t, h, stdhttp.MethodGet, "/level/analyses/abc", nil)
	if code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("status = %d", code)
	}
	code, _ = do(t, h, stdhttp.MethodGet, "/level/analyses?limit=0", nil)
	if code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("bad limit status = %d", code)
	}
}
