package mediatype

import "sort"

// Match selects how a Constraint compares candidate values.
type Match string

const (
	// MatchExact accepts a single fixed value.
	MatchExact Match = "exact"

	// MatchEnum accepts any value from a fixed set.
	MatchEnum Match = "enum"

	// MatchToken accepts any bare token (letters, digits, and the token
	// punctuation set).
	MatchToken Match = "token"
)

// Constraint is the accepted-value rule for one parameter. When
// CaseInsensitive is set, comparison happens after ASCII lowercasing and
// the canonical serializer emits the value lowercased; otherwise values
// are compared and emitted byte-for-byte.
type Constraint struct {
	Match           Match
	Value           string
	Values          []string
	CaseInsensitive bool
}

// Satisfies reports whether value passes the constraint.
func (c Constraint) Satisfies(value string) bool {
	switch c.Match {
	case MatchExact:
		if c.CaseInsensitive {
			return equalFoldASCII(value, c.Value)
		}
		return value == c.Value
	case MatchEnum:
		for _, v := range c.Values {
			if c.CaseInsensitive {
				if equalFoldASCII(value, v) {
					return true
				}
			} else if value == v {
				return true
			}
		}
		return false
	case MatchToken:
		if value == "" {
			return false
		}
		for i := 0; i < len(value); i++ {
			if !isTokenChar(value[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Entry is the parameter policy for one registered type/subtype pair.
// Params is keyed by lowercase parameter name; an entry with an empty
// Params map registers the pair but permits no parameters at all.
type Entry struct {
	Type    string
	Subtype string
	Params  map[string]Constraint
}

// Key returns the lowercase "type/subtype" registry key.
func (e Entry) Key() string {
	return lowerASCII(e.Type) + "/" + lowerASCII(e.Subtype)
}

// Registry is the immutable table of registered media types. It is built
// once at process start, either from Builtin or from a registry document
// (see LoadRegistry), and shared without locks by every concurrent
// validation call.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry builds a Registry from entries. Duplicate type/subtype pairs
// are a configuration error.
func NewRegistry(entries []Entry) (*Registry, error) {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		key := e.Key()
		if _, dup := m[key]; dup {
			return nil, &RegistryError{Entry: key, Message: "duplicate registry entry"}
		}
		m[key] = e
	}
	return &Registry{entries: m}, nil
}

// Lookup returns the entry for a type/subtype pair, matching
// case-insensitively.
func (r *Registry) Lookup(typ, subtype string) (Entry, bool) {
	e, ok := r.entries[lowerASCII(typ)+"/"+lowerASCII(subtype)]
	return e, ok
}

// Len returns the number of registered pairs.
func (r *Registry) Len() int { return len(r.entries) }

// Entries returns all entries sorted by key, for display and audit.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Builtin returns the compiled-in registry table. This table is the single
// auditable statement of which media types the embedding pipeline treats
// as meaningful when parameters are present; parameter-free types need no
// entry to be accepted.
func Builtin() *Registry {
	reg, err := NewRegistry([]Entry{
		{
			Type: "audio", Subtype: "ogg",
			Params: map[string]Constraint{
				"codecs": {Match: MatchExact, Value: "opus", CaseInsensitive: true},
			},
		},
		{
			// audio/opus is a bare container: the codec is implied, so the
			// pair carries no parameters.
			Type: "audio", Subtype: "opus",
			Params: map[string]Constraint{},
		},
		{
			Type: "video", Subtype: "webm",
			Params: map[string]Constraint{
				"codecs": {Match: MatchEnum, Values: []string{"vp8", "vp9", "av1", "opus"}, CaseInsensitive: true},
			},
		},
		{
			// MP4 codec strings (e.g. avc1.64001f) are case-sensitive
			// identifiers; preserve them verbatim.
			Type: "video", Subtype: "mp4",
			Params: map[string]Constraint{
				"codecs": {Match: MatchToken},
			},
		},
		{
			Type: "text", Subtype: "plain",
			Params: map[string]Constraint{
				"charset": {Match: MatchExact, Value: "utf-8", CaseInsensitive: true},
			},
		},
	})
	if err != nil {
		// The builtin table is static data; a duplicate here is a
		// programming error.
		panic(err)
	}
	return reg
}
