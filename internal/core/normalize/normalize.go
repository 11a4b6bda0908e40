// Package normalize turns one raw subtitle line into plain lowercase speech text
// Pipeline order
// 1 reject lines without an ASCII letter (music cues, timestamps, symbols)
// 2 sanitize controls, drop invalid UTF-8, NFKC, strip format chars, width fold, lowercase
// 3 strip html-like tags
// 4 strip bracketed stage directions () and []
// 5 strip a leading speaker tag ("john:", "man #2:")
// 6 drop non-speech runes; apostrophes, hyphens and . @ / survive only inside words
// 7 collapse whitespace to single spaces and trim
package normalize

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct{}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
			cases.Lower(language.English),
		)
	},
}

var (
	reLetter     = regexp.MustCompile(`[A-Za-z]`)
	reTag        = regexp.MustCompile(`<[^<]+?>`)
	reParens     = regexp.MustCompile(`\([^(]+?\)`)
	reBrackets   = regexp.MustCompile(`\[[^\[]+?\]`)
	reSpeaker    = regexp.MustCompile(`^[\w#\s]+:(\s|$)`)
	reDialogDash = regexp.MustCompile(`(^|\s)-+(\s|$)`)
)

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// IsSpeech reports whether s contains at least one ASCII letter
func IsSpeech(s string) bool { return reLetter.MatchString(s) }

// Line returns the normalized form of one subtitle line, or "" when the line carries no speech
func (n *Normalizer) Line(s string) string {
	if s == "" || !IsSpeech(s) {
		return ""
	}

	s = Sanitize(s)
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	s, _, _ = transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	// multi-line cues are one utterance
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	s = reDialogDash.ReplaceAllString(s, " ")

	s = reTag.ReplaceAllString(s, "")
	s = reParens.ReplaceAllString(s, "")
	s = reBrackets.ReplaceAllString(s, "")
	s = reSpeaker.ReplaceAllString(strings.TrimLeft(s, " \t"), " ")

	s = collapseSpaces(keepSpeech(s))
	if !IsSpeech(s) {
		return ""
	}
	return s
}

// Lines normalizes every line and drops the ones left empty
func (n *Normalizer) Lines(in []string) []string {
	out := make([]string, 0, len(in))
	for _, l := range in {
		if v := n.Line(l); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// keepSpeech maps every rune that is not a letter, digit or blank to a space.
// Apostrophes, hyphens and the address runes . @ / are kept only between two
// word runes ("don't", "well-known", "bob@example.org"); "://" is kept after a
// scheme so URLs reach the annotator whole
func keepSpeech(s string) string {
	rs := []rune(s)
	word := func(i int) bool { return i >= 0 && i < len(rs) && isWordRune(rs[i]) }
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case isWordRune(r):
			b.WriteRune(r)
		case r == '\'' || r == '’' || r == '‘':
			if word(i-1) && word(i+1) {
				b.WriteByte('\'')
				continue
			}
			b.WriteByte(' ')
		case r == '-' || r == '.' || r == '@' || r == '/':
			if word(i-1) && word(i+1) {
				b.WriteRune(r)
				continue
			}
			b.WriteByte(' ')
		case r == ':' && word(i-1) && i+3 < len(rs) && rs[i+1] == '/' && rs[i+2] == '/' && word(i+3):
			b.WriteString("://")
			i += 2
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims both ends
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
