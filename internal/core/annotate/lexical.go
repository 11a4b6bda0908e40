package annotate

import (
	"bufio"
	"bytes"
	_ "embed"
	"regexp"
	"strings"
	"unicode"
)

//go:embed stopwords.txt
var embeddedStops []byte

var stopwords = loadStops(embeddedStops)

func loadStops(b []byte) map[string]struct{} {
	m := make(map[string]struct{}, 400)
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		m[w] = struct{}{}
	}
	return m
}

// IsStop reports whether the lowercase form of s is a stop word
func IsStop(s string) bool {
	_, ok := stopwords[strings.ToLower(strings.ReplaceAll(s, "’", "'"))]
	return ok
}

func all(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}

// IsPunct reports whether s is made only of punctuation
func IsPunct(s string) bool { return all(s, unicode.IsPunct) }

// IsCurrency reports whether s is made only of currency symbols
func IsCurrency(s string) bool {
	return all(s, func(r rune) bool { return unicode.Is(unicode.Sc, r) })
}

// IsDigit reports whether s is made only of digits
func IsDigit(s string) bool { return all(s, unicode.IsDigit) }

// IsSpace reports whether s is made only of whitespace
func IsSpace(s string) bool { return all(s, unicode.IsSpace) }

var numWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`zero one two three four five six seven eight nine ten
		eleven twelve thirteen fourteen fifteen sixteen seventeen eighteen nineteen twenty
		thirty forty fifty sixty seventy eighty ninety hundred thousand million billion
		trillion quadrillion gajillion bazillion
		first second third fourth fifth sixth seventh eighth ninth tenth eleventh twelfth
		thirteenth fourteenth fifteenth sixteenth seventeenth eighteenth nineteenth
		twentieth thirtieth fortieth fiftieth sixtieth seventieth eightieth ninetieth
		hundredth thousandth millionth billionth trillionth`) {
		numWords[w] = struct{}{}
	}
}

var reOrdinal = regexp.MustCompile(`^[0-9]+(st|nd|rd|th)$`)

// LikeNum reports whether s reads as a number: "10,000", "3.5", "1/2", "twelve", "21st"
func LikeNum(s string) bool {
	s = strings.TrimLeft(strings.ToLower(s), "+-±~")
	if s == "" {
		return false
	}
	if IsDigit(strings.NewReplacer(",", "", ".", "").Replace(s)) {
		return true
	}
	if a, b, ok := strings.Cut(s, "/"); ok && IsDigit(a) && IsDigit(b) {
		return true
	}
	if _, ok := numWords[s]; ok {
		return true
	}
	return reOrdinal.MatchString(s)
}

var (
	reEmail  = regexp.MustCompile(`^[\w.+-]+@[\w-]+(\.[\w-]+)+$`)
	reDomain = regexp.MustCompile(`^[\w-]+(\.[\w-]+)*\.([a-z]{2,6})(/\S*)?$`)
	tlds     = map[string]struct{}{
		"com": {}, "org": {}, "net": {}, "edu": {}, "gov": {}, "io": {}, "co": {}, "uk": {},
		"us": {}, "de": {}, "fr": {}, "ru": {}, "info": {}, "biz": {}, "tv": {}, "me": {},
	}
)

// LikeEmail reports whether s looks like an email address
func LikeEmail(s string) bool { return reEmail.MatchString(s) }

// LikeURL reports whether s looks like a URL or a bare domain with a common TLD
func LikeURL(s string) bool {
	l := strings.ToLower(s)
	for _, p := range []string{"http://", "https://", "ftp://", "www."} {
		if strings.HasPrefix(l, p) && len(l) > len(p) {
			return true
		}
	}
	m := reDomain.FindStringSubmatch(l)
	if m == nil {
		return false
	}
	_, ok := tlds[m[2]]
	return ok
}
