package net_test

import (
	"context"
	"testing"

	pnet "sublevel/internal/platform/net"
)

func TestWithRequest_And_Getters(t *testing.T) {
	base := context.Background()

	cases := []struct {
		name      string
		reqID     string
		client    string
		wantReq   string
		wantCl    string
		sameAsCtx bool
	}{
		{name: "sets both ids", reqID: "req-123", client: "key-1", wantReq: "req-123", wantCl: "key-1"},
		{name: "request only", reqID: "r-only", wantReq: "r-only"},
		{name: "client only", client: "c-only", wantCl: "c-only"},
		{name: "nothing set", sameAsCtx: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := pnet.WithClient(pnet.WithRequest(base, tc.reqID), tc.client)
			if got := pnet.RequestID(ctx); got != tc.wantReq {
				t.Fatalf("RequestID got %q want %q", got, tc.wantReq)
			}
			if got := pnet.ClientID(ctx); got != tc.wantCl {
				t.Fatalf("ClientID got %q want %q", got, tc.wantCl)
			}
			if tc.sameAsCtx && ctx != base {
				t.Fatalf("empty ids should not wrap the context")
			}
		})
	}
}
