package features

import (
	"strconv"

	"sublevel/internal/core/lengths"
	"sublevel/internal/core/nlp"
	"sublevel/internal/core/vocab"
)

// Options selects the feature set
type Options struct {
	Schema         vocab.Schema `json:"schema"`
	EnablePOS      bool         `json:"enable_pos"`
	EnableSentence bool         `json:"enable_sentence"`
	EnableTiming   bool         `json:"enable_timing"`
}

// DefaultOptions is the six-level schema with every optional group on
func DefaultOptions() Options {
	return Options{Schema: vocab.SixLevel, EnablePOS: true, EnableSentence: true, EnableTiming: true}
}

// Feature names
const (
	KeyLemmasCount       = "lemmas_count"
	KeyLemmasUnique      = "lemmas_unique"
	KeyLemmasUniqueRatio = "lemmas_unique_ratio"
	KeyUnleveled         = "unleveled"
	KeyUnleveledRatio    = "unleveledratio"
	KeyDurationMedian    = "duration_median"
	KeyCharsRateMedian   = "charsrate_median"
	KeyWordsRateMedian   = "wordsrate_median"
	KeyLinesCount        = "lines_count"
	KeySentsCount        = "sents_count"
	KeySentsMedian       = "sents_median"
)

func ratio(k string) string { return k + "ratio" }

// CoverageKey is the dictionary coverage name of level l
func CoverageKey(l vocab.Level) string { return "coverage_" + l.String() }

// BelowKey is the cumulative-below name of level l
func BelowKey(l vocab.Level) string { return "coverage_less_equal_" + l.String() }

// AboveKey is the cumulative-above name of level l
func AboveKey(l vocab.Level) string { return "coverage_more_than_" + l.String() }

// LenKeys are the equal/more/less names of bucket i
func LenKeys(i int) (equal, more, less string) {
	s := strconv.Itoa(i)
	return "len_equal_" + s, "more_than_" + s, "less_than_" + s
}

// POSKey is the share name of a universal POS tag
func POSKey(upos string) string { return "pos_" + upos + "ratio" }

// Keys lists every feature name produced under opts, in record order
func Keys(opts Options) []string {
	levels := opts.Schema.Levels()
	keys := make([]string, 0, 128)
	keys = append(keys, KeyLemmasCount, KeyLemmasUnique, KeyLemmasUniqueRatio)

	for _, l := range levels {
		keys = append(keys, l.String(), ratio(l.String()))
	}
	keys = append(keys, KeyUnleveled, ratio(KeyUnleveled))
	for _, l := range levels {
		c, b, a := CoverageKey(l), BelowKey(l), AboveKey(l)
		keys = append(keys, c, ratio(c), b, ratio(b), a, ratio(a))
	}

	for i := 1; i <= lengths.MaxBucket; i++ {
		eq, more, less := LenKeys(i)
		keys = append(keys, eq, ratio(eq), more, ratio(more), less, ratio(less))
	}

	if opts.EnableTiming {
		keys = append(keys, KeyDurationMedian, KeyCharsRateMedian, KeyWordsRateMedian, KeyLinesCount)
	}
	if opts.EnableSentence {
		keys = append(keys, KeySentsCount, KeySentsMedian)
	}
	if opts.EnablePOS {
		for _, p := range nlp.UPOS {
			keys = append(keys, POSKey(p))
		}
	}
	return keys
}
