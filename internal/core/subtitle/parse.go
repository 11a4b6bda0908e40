package subtitle

import (
	"io"
	"path/filepath"
	"strings"

	perr "sublevel/internal/platform/errors"

	"github.com/asticode/go-astisub"
)

// Format names a subtitle container
type Format string

// Supported containers
const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
	FormatSSA Format = "ssa"
)

// ParseFormat maps a user supplied name to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "srt":
		return FormatSRT, nil
	case "vtt", "webvtt":
		return FormatVTT, nil
	case "ssa", "ass":
		return FormatSSA, nil
	default:
		return "", perr.InvalidArgf("subtitle: unsupported format %q", s)
	}
}

// DetectFormat picks a format from the file name, falling back to sniffing the content
func DetectFormat(name, content string) Format {
	if f, err := ParseFormat(filepath.Ext(name)); err == nil {
		return f
	}
	head := strings.TrimSpace(strings.TrimPrefix(content, "\ufeff"))
	switch {
	case strings.HasPrefix(head, "WEBVTT"):
		return FormatVTT
	case strings.HasPrefix(head, "[Script Info]"):
		return FormatSSA
	default:
		return FormatSRT
	}
}

// ParseSRT reads SubRip cues
func ParseSRT(r io.Reader) ([]Entry, error) { return Parse(FormatSRT, r) }

// ParseVTT reads WebVTT cues
func ParseVTT(r io.Reader) ([]Entry, error) { return Parse(FormatVTT, r) }

// Parse reads cues of the given format in file order
func Parse(f Format, r io.Reader) ([]Entry, error) {
	var (
		subs *astisub.Subtitles
		err  error
	)
	switch f {
	case FormatSRT:
		subs, err = astisub.ReadFromSRT(r)
	case FormatVTT:
		subs, err = astisub.ReadFromWebVTT(r)
	case FormatSSA:
		subs, err = astisub.ReadFromSSA(r)
	default:
		return nil, perr.InvalidArgf("subtitle: unsupported format %q", f)
	}
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDecode, "subtitle: parse %s", f)
	}
	return fromAstisub(subs), nil
}

// ParseBytes decodes raw bytes and parses them, detecting the format when f is empty
func ParseBytes(name string, f Format, raw []byte) ([]Entry, error) {
	text, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	if f == "" {
		f = DetectFormat(name, text)
	}
	return Parse(f, strings.NewReader(text))
}

func fromAstisub(subs *astisub.Subtitles) []Entry {
	if subs == nil {
		return nil
	}
	out := make([]Entry, 0, len(subs.Items))
	for i, it := range subs.Items {
		if it == nil {
			continue
		}
		lines := make([]string, 0, len(it.Lines))
		for _, l := range it.Lines {
			lines = append(lines, l.String())
		}
		idx := it.Index
		if idx == 0 {
			idx = i + 1
		}
		out = append(out, Entry{
			Index: idx,
			Start: it.StartAt,
			End:   it.EndAt,
			Text:  strings.Join(lines, "\n"),
		})
	}
	return out
}
