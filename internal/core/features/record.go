package features

import (
	"bytes"
	"encoding/json"
	"strconv"

	perr "sublevel/internal/platform/errors"

	"sublevel/internal/core/stats"
)

// Record is an ordered name -> value list. The key set depends only on Options
type Record struct {
	keys   []string
	values map[string]float64
}

func newRecord(keys []string) *Record {
	r := &Record{keys: keys, values: make(map[string]float64, len(keys))}
	for _, k := range keys {
		r.values[k] = 0
	}
	return r
}

// set ignores keys outside the record so the schema cannot drift
func (r *Record) set(k string, v float64) {
	if _, ok := r.values[k]; ok {
		r.values[k] = stats.Finite(v)
	}
}

func (r *Record) seti(k string, v int) { r.set(k, float64(v)) }

// Get returns the value of key k
func (r *Record) Get(k string) (float64, bool) {
	v, ok := r.values[k]
	return v, ok
}

// Keys returns the keys in order (a copy)
func (r *Record) Keys() []string { return append([]string(nil), r.keys...) }

// Len is the number of features
func (r *Record) Len() int { return len(r.keys) }

// Map returns a copy of the values
func (r *Record) Map() map[string]float64 {
	m := make(map[string]float64, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// Vector returns the values in key order
func (r *Record) Vector() []float64 {
	out := make([]float64, len(r.keys))
	for i, k := range r.keys {
		out[i] = r.values[k]
	}
	return out
}

// MarshalJSON writes an object with keys in record order
func (r *Record) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, _ := json.Marshal(k)
		b.Write(kb)
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(r.values[k], 'g', -1, 64))
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// FromMap rebuilds a Record for opts from stored values; unknown keys are rejected
func FromMap(opts Options, m map[string]float64) (*Record, error) {
	r := newRecord(Keys(opts))
	for k, v := range m {
		if _, ok := r.values[k]; !ok {
			return nil, perr.WithField(perr.InvalidArgf("features: unknown key %q", k), k)
		}
		r.set(k, v)
	}
	return r, nil
}
