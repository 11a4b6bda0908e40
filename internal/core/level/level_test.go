package level

import (
	"testing"

	"sublevel/internal/core/annotate"
	"sublevel/internal/core/vocab"
)

func TestLabel(t *testing.T) {
	cases := []struct {
		pred   float64
		schema vocab.Schema
		want   string
	}{
		{1.0, vocab.SixLevel, "A1"},
		{0.3, vocab.SixLevel, "A1"},
		{3.1, vocab.SixLevel, "B1"},
		{3.2, vocab.SixLevel, "B1+"},
		{3.49, vocab.SixLevel, "B1+"},
		{3.5, vocab.SixLevel, "B1+/B2"},
		{3.79, vocab.SixLevel, "B1+/B2"},
		{3.85, vocab.SixLevel, "B2"},
		{5.6, vocab.SixLevel, "C1+/C2"},
		{6.0, vocab.SixLevel, "C2+"},
		{7.2, vocab.SixLevel, "C2+"},
		{5.0, vocab.FiveLevel, "C1+"},
		{4.5, vocab.FiveLevel, "B2+/C1"},
	}
	for _, tc := range cases {
		if got := Label(tc.pred, tc.schema); got != tc.want {
			t.Fatalf("Label(%v, %s) = %q, want %q", tc.pred, tc.schema, got, tc.want)
		}
	}
}

func TestNearest(t *testing.T) {
	if Nearest(2.4, vocab.SixLevel) != vocab.A2 || Nearest(9, vocab.FiveLevel) != vocab.C1 || Nearest(-1, vocab.SixLevel) != vocab.A1 {
		t.Fatalf("Nearest clamps and rounds")
	}
}

func TestSummarize(t *testing.T) {
	v := vocab.New([]vocab.Entry{
		{Word: "cat", Level: vocab.A1},
		{Word: "house", Level: vocab.A1},
		{Word: "journey", Level: vocab.B1},
		{Word: "ubiquitous", Level: vocab.C2},
	})
	ann := annotate.Annotation{Lemmas: []string{"house", "cat", "journey", "cat", "ubiquitous", "zebra"}}
	s := Summarize(ann, v, vocab.A2)
	if len(s.Known.Short) != 1 || s.Known.Short[0] != "cat" || len(s.Known.Medium) != 1 {
		t.Fatalf("known = %+v", s.Known)
	}
	if len(s.Hard.Medium) != 0 || len(s.Hard.Long) != 2 || s.Hard.Long[0] != "journey" {
		t.Fatalf("hard = %+v", s.Hard)
	}
}
