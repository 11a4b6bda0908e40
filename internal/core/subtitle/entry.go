// Package subtitle decodes subtitle containers (SRT, WebVTT, SSA) into timed entries
package subtitle

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Entry is one timed cue in file order. Text may still carry markup
type Entry struct {
	Index int           `json:"index"`
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
	Text  string        `json:"text"`
}

// FromMillis builds an Entry from millisecond offsets
func FromMillis(index int, startMS, endMS int64, text string) Entry {
	return Entry{
		Index: index,
		Start: time.Duration(startMS) * time.Millisecond,
		End:   time.Duration(endMS) * time.Millisecond,
		Text:  text,
	}
}

// Duration is End-Start; negative when the cue timing is broken
func (e Entry) Duration() time.Duration { return e.End - e.Start }

// DurationMS returns the cue length in milliseconds
func (e Entry) DurationMS() float64 {
	return float64(e.Duration()) / float64(time.Millisecond)
}

// Valid reports whether the cue has a positive duration
func (e Entry) Valid() bool { return e.Duration() > 0 }

var reMarkup = regexp.MustCompile(`<[^<>]*>|\{\\[^{}]*\}`)

// DisplayText is the text with markup and line breaks removed
func (e Entry) DisplayText() string {
	s := reMarkup.ReplaceAllString(e.Text, "")
	return strings.NewReplacer("\r\n", "", "\n", "", "\r", "").Replace(s)
}

// CharsPerSecond is the rune count of DisplayText per second of display time; 0 when invalid
func (e Entry) CharsPerSecond() float64 {
	if !e.Valid() {
		return 0
	}
	return float64(utf8.RuneCountInString(e.DisplayText())) / e.Duration().Seconds()
}
