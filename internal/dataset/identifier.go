package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned by Parse when an identifier has fewer than two
// slash-delimited parts.
var ErrMalformed = errors.New("malformed dataset identifier")

// Identifier is the structured form of a dataset name.
type Identifier struct {
	// Raw is the identifier exactly as it was given to Parse.
	Raw       string
	Primary   string
	Secondary string
	Tier      string // empty when the identifier has only two parts
}

// Parse splits a dataset identifier into its parts. Leading and trailing
// slashes are ignored. Parts beyond the third are ignored as well.
func Parse(raw string) (Identifier, error) {
	parts := strings.Split(strings.Trim(raw, "/"), "/")
	if len(parts) < 2 {
		return Identifier{}, fmt.Errorf("%w: %q needs at least two path segments", ErrMalformed, raw)
	}

	id := Identifier{
		Raw:       raw,
		Primary:   parts[0],
		Secondary: parts[1],
	}
	if len(parts) > 2 {
		id.Tier = parts[2]
	}
	return id, nil
}

// String returns the identifier as it was parsed.
func (id Identifier) String() string {
	return id.Raw
}

// versionSuffix is the last underscore-delimited component of the
// secondary name, e.g. `v2-v2` for `RunIIAutumn18_realistic_v2-v2`.
func (id Identifier) versionSuffix() string {
	s := id.Secondary
	if i := strings.LastIndex(s, "_"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// primaryStem joins at most the first two dash-delimited components of the
// primary name with an underscore.
func (id Identifier) primaryStem() string {
	fields := strings.Split(id.Primary, "-")
	if len(fields) > 2 {
		fields = fields[:2]
	}
	return strings.Join(fields, "_")
}
