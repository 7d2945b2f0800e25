// Package manifest holds the in-memory dataset manifest and its JSON
// serialisation.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf16"
	"unicode/utf8"
)

// Entry is the manifest record of a single dataset.
type Entry struct {
	ShortName string `json:"short_name"`
	Year      string `json:"year"`
	Process   string `json:"process"`
	// Xsec is never computed here and is always written as null.
	Xsec  *float64 `json:"xsec"`
	Files []string `json:"files"`
}

// Manifest maps dataset identifiers to entries, preserving insertion order.
// The zero value is ready to use.
type Manifest struct {
	keys    []string
	entries map[string]Entry
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{entries: make(map[string]Entry)}
}

// Set stores entry under dataset. Setting an existing dataset replaces its
// entry but keeps the position of the first insertion.
func (m *Manifest) Set(dataset string, entry Entry) {
	if m.entries == nil {
		m.entries = make(map[string]Entry)
	}
	if _, ok := m.entries[dataset]; !ok {
		m.keys = append(m.keys, dataset)
	}
	if entry.Files == nil {
		entry.Files = []string{}
	}
	m.entries[dataset] = entry
}

// Get returns the entry stored under dataset.
func (m *Manifest) Get(dataset string) (Entry, bool) {
	e, ok := m.entries[dataset]
	return e, ok
}

// Keys returns the dataset identifiers in insertion order.
func (m *Manifest) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of datasets in the manifest.
func (m *Manifest) Len() int {
	return len(m.keys)
}

// MarshalJSON encodes the manifest as a compact JSON object whose keys
// appear in insertion order.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeValue(&buf, m.entries[k]); err != nil {
			return nil, fmt.Errorf("failed to encode entry for %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encode returns the manifest as JSON indented with two spaces.
func (m *Manifest) Encode() ([]byte, error) {
	compact, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// WriteFile writes the indented manifest to path, replacing any existing file.
func (m *Manifest) WriteFile(path string) error {
	data, err := m.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest '%s': %w", path, err)
	}
	return nil
}

// encodeValue writes v as ASCII-only JSON without HTML escaping and without
// the trailing newline json.Encoder appends.
func encodeValue(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	writeASCII(buf, bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// writeASCII copies encoded JSON to buf, replacing every non-ASCII rune with
// a lowercase \uXXXX escape (a surrogate pair above the BMP). Non-ASCII
// bytes only occur inside strings, where the escape is equivalent.
func writeASCII(buf *bytes.Buffer, data []byte) {
	for len(data) > 0 {
		if data[0] < utf8.RuneSelf {
			buf.WriteByte(data[0])
			data = data[1:]
			continue
		}
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			fmt.Fprintf(buf, `\u%04x\u%04x`, r1, r2)
			continue
		}
		fmt.Fprintf(buf, `\u%04x`, r)
	}
}
