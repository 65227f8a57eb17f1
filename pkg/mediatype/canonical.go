package mediatype

import (
	"sort"
	"strings"
)

// Canonicalize renders an accepted parsed value as the one deterministic
// string all nodes must agree on: lowercase type/subtype, parameters in
// name-sorted order with lowercase names, values lowercased when their
// constraint is case-insensitive and preserved verbatim otherwise, no
// whitespace, quoting only where a value cannot be re-tokenized bare.
//
// Canonicalize is defined only for values Evaluate has accepted. It is
// idempotent: canonicalizing the parse of its own output returns the same
// string.
func Canonicalize(parsed *Parsed, reg *Registry) string {
	var sb strings.Builder
	sb.WriteString(lowerASCII(parsed.Type))
	sb.WriteByte('/')
	sb.WriteString(lowerASCII(parsed.Subtype))

	if len(parsed.Params) == 0 {
		return sb.String()
	}

	entry, _ := reg.Lookup(parsed.Type, parsed.Subtype)

	type canonParam struct {
		name  string
		value string
	}
	params := make([]canonParam, 0, len(parsed.Params))
	for _, p := range parsed.Params {
		name := lowerASCII(p.Name)
		value := p.Value
		if c, ok := entry.Params[name]; ok && c.CaseInsensitive {
			value = lowerASCII(value)
		}
		params = append(params, canonParam{name: name, value: value})
	}
	// Names are unique after folding, so the order is total.
	sort.Slice(params, func(i, j int) bool { return params[i].name < params[j].name })

	for _, p := range params {
		sb.WriteByte(';')
		sb.WriteString(p.name)
		sb.WriteByte('=')
		sb.WriteString(renderValue(p.value))
	}
	return sb.String()
}

// renderValue emits a parameter value, quoting only when the value could
// not be re-tokenized as a bare token. Quoting is required for `;`, `"`,
// and whitespace, and applied to every other non-token byte as well so the
// canonical string always re-parses to the same value.
func renderValue(v string) string {
	if !needsQuoting(v) {
		return v
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(v); i++ {
		if v[i] == '"' || v[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(v[i])
	}
	sb.WriteByte('"')
	return sb.String()
}

func needsQuoting(v string) bool {
	if v == "" {
		return true
	}
	for i := 0; i < len(v); i++ {
		if !isTokenChar(v[i]) {
			return true
		}
	}
	return false
}
