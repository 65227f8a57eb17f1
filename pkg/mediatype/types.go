package mediatype

// Param is a single media-type parameter as it appeared in the input.
// Name is case-insensitive; Value retains its original bytes (quoting
// removed, escapes resolved).
type Param struct {
	Name  string
	Value string
}

// Parsed is a tokenized media type: a type/subtype pair plus the
// parameters in order of appearance. Parameter names are guaranteed unique
// under ASCII-case-insensitive comparison by the tokenizer.
//
// Parsed values are ephemeral: one is built per validation call and never
// persisted.
type Parsed struct {
	Type    string
	Subtype string
	Params  []Param
}

// Key returns the lowercase "type/subtype" form used for Registry lookups.
func (p *Parsed) Key() string {
	return lowerASCII(p.Type) + "/" + lowerASCII(p.Subtype)
}

// lowerASCII lowercases A-Z only. Case folding feeds the consensus-visible
// canonical form, so it must not depend on Unicode tables or platform
// locale.
func lowerASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// equalFoldASCII reports whether a and b are equal under ASCII-only case
// folding.
func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
