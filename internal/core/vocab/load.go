package vocab

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	perr "sublevel/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

// Format is the on-disk encoding of a vocabulary file
type Format string

// Supported vocabulary encodings
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a Format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", perr.InvalidArgf("vocab: unsupported file extension %q", filepath.Ext(path))
	}
}

// LoadFile reads and parses a vocabulary file
func LoadFile(path string) (*Vocabulary, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "vocab: open %s", path)
	}
	defer func() { _ = fh.Close() }()
	return Load(fh, f)
}

// Load parses a vocabulary in the given format
func Load(r io.Reader, f Format) (*Vocabulary, error) {
	entries, err := ReadEntries(r, f)
	if err != nil {
		return nil, err
	}
	return New(entries), nil
}

// ReadEntries parses raw rows without building a Vocabulary (used by the packer)
func ReadEntries(r io.Reader, f Format) ([]Entry, error) {
	switch f {
	case FormatCSV:
		return readCSV(r)
	case FormatJSON:
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "vocab: read json")
		}
		return decodeShapes(b, json.Unmarshal)
	case FormatYAML:
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "vocab: read yaml")
		}
		return decodeShapes(b, yaml.Unmarshal)
	default:
		return nil, perr.InvalidArgf("vocab: unsupported format %q", f)
	}
}

// decodeShapes accepts either a list of {word, level} rows or a {word: level} mapping
func decodeShapes(b []byte, unmarshal func([]byte, any) error) ([]Entry, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, nil
	}

	var rows []struct {
		Word  string `json:"word" yaml:"word"`
		Level string `json:"level" yaml:"level"`
	}
	listErr := unmarshal(b, &rows)
	if listErr == nil {
		out := make([]Entry, 0, len(rows))
		for i, r := range rows {
			l, err := ParseLevel(r.Level)
			if err != nil {
				return nil, perr.WithField(err, "row "+strconv.Itoa(i))
			}
			out = append(out, Entry{Word: r.Word, Level: l})
		}
		return out, nil
	}

	var m map[string]string
	if err := unmarshal(b, &m); err != nil {
		return nil, perr.Wrap(errors.Join(listErr, err), perr.ErrorCodeValidation, "vocab: decode")
	}
	out := make([]Entry, 0, len(m))
	for w, lv := range m {
		l, err := ParseLevel(lv)
		if err != nil {
			return nil, perr.WithField(err, w)
		}
		out = append(out, Entry{Word: w, Level: l})
	}
	return out, nil
}

// readCSV reads "word,level" rows; a header row and tab separators are tolerated
func readCSV(r io.Reader) ([]Entry, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "vocab: read csv")
	}
	cr := csv.NewReader(bytes.NewReader(b))
	if bytes.ContainsRune(firstLine(b), '\t') {
		cr.Comma = '\t'
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var out []Entry
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeValidation, "vocab: csv line %d", line)
		}
		if len(rec) < 2 {
			continue
		}
		l, err := ParseLevel(rec[1])
		if err != nil {
			if line == 1 && strings.EqualFold(strings.TrimSpace(rec[1]), "level") {
				continue
			}
			return nil, perr.WithField(err, "line "+strconv.Itoa(line))
		}
		out = append(out, Entry{Word: rec[0], Level: l})
	}
	return out, nil
}

func firstLine(b []byte) []byte {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return b[:i]
	}
	return b
}
