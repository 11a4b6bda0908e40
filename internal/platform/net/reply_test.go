package net_test

import (
	"errors"
	"net/http"
	"testing"

	perr "sublevel/internal/platform/errors"
	pnet "sublevel/internal/platform/net"
)

func TestReply(t *testing.T) {
	env := pnet.Reply(http.StatusCreated, map[string]int{"cues": 3}, "req-1")
	if env.StatusCode != http.StatusCreated || env.Status != "Created" || env.RequestID != "req-1" {
		t.Fatalf("envelope = %+v", env)
	}
	if env.Code != 0 || env.Error != "" || env.Data.(map[string]int)["cues"] != 3 {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   perr.ErrorCode
		field  string
	}{
		{"unauthorized", perr.Unauthorizedf("unknown api key"), http.StatusUnauthorized, perr.ErrorCodeUnauthorized, ""},
		{"validation keeps field", perr.WithField(perr.Newf(perr.ErrorCodeValidation, "text is required"), "text"), http.StatusBadRequest, perr.ErrorCodeValidation, "text"},
		{"empty document", perr.EmptyDocumentf("no speech"), http.StatusUnprocessableEntity, perr.ErrorCodeEmptyDocument, ""},
		{"foreign error", errors.New("boom"), http.StatusInternalServerError, perr.ErrorCodeUnknown, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, env := pnet.Error(tc.err, "req-9")
			if status != tc.status || env.StatusCode != tc.status || env.Status != http.StatusText(tc.status) {
				t.Fatalf("status = %d, envelope = %+v", status, env)
			}
			if env.Code != tc.code || env.Field != tc.field || env.Error == "" || env.RequestID != "req-9" || env.Data != nil {
				t.Fatalf("envelope = %+v", env)
			}
		})
	}
}
