// Package lengths builds the lemma length distribution over buckets 1..MaxBucket
package lengths

import (
	"unicode/utf8"

	"sublevel/internal/core/stats"
)

// MaxBucket is the largest length bucket
const MaxBucket = 9

// Bucket counts lemmas relative to one length i
type Bucket struct {
	Len        int     `json:"len"`
	Equal      int     `json:"equal"`
	More       int     `json:"more"`
	Less       int     `json:"less"`
	EqualRatio float64 `json:"equal_ratio"`
	MoreRatio  float64 `json:"more_ratio"`
	LessRatio  float64 `json:"less_ratio"`
}

// Distribution is the per-bucket view of a lemma sequence
type Distribution struct {
	Total   int      `json:"total"`
	Buckets []Bucket `json:"buckets"` // Buckets[i-1] is length i
}

// Build counts over the full sequence, duplicates included. Length is in runes
func Build(lemmas []string) Distribution {
	hist := make(map[int]int, 16)
	for _, l := range lemmas {
		hist[utf8.RuneCountInString(l)]++
	}
	total := len(lemmas)

	d := Distribution{Total: total, Buckets: make([]Bucket, 0, MaxBucket)}
	less := hist[0]
	for i := 1; i <= MaxBucket; i++ {
		eq := hist[i]
		more := total - less - eq
		d.Buckets = append(d.Buckets, Bucket{
			Len:        i,
			Equal:      eq,
			More:       more,
			Less:       less,
			EqualRatio: stats.Ratioi(eq, total),
			MoreRatio:  stats.Ratioi(more, total),
			LessRatio:  stats.Ratioi(less, total),
		})
		less += eq
	}
	return d
}

// Band splits lemmas into short (<4 runes), medium (4..6) and long (>6) groups
func Band(lemmas []string) (short, medium, long []string) {
	for _, l := range lemmas {
		switch n := utf8.RuneCountInString(l); {
		case n < 4:
			short = append(short, l)
		case n <= 6:
			medium = append(medium, l)
		default:
			long = append(long, l)
		}
	}
	return short, medium, long
}
