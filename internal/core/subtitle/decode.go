package subtitle

import (
	"bytes"
	"unicode/utf8"

	perr "sublevel/internal/platform/errors"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode turns raw subtitle bytes into UTF-8 text.
// A UTF-8 or UTF-16 BOM selects the encoding; BOM-less bytes that are not valid UTF-8
// are read as Windows-1252
func Decode(raw []byte) (string, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", perr.EmptyDocumentf("subtitle: empty input")
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeDecode, "subtitle: decode with BOM")
	}
	if !utf8.Valid(out) {
		out, err = charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return "", perr.Wrap(err, perr.ErrorCodeDecode, "subtitle: decode windows-1252")
		}
	}
	if bytes.IndexByte(out, 0) >= 0 {
		return "", perr.Decodef("subtitle: input looks binary")
	}
	return string(out), nil
}
