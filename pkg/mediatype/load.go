package mediatype

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// registryDoc is the YAML shape of a registry document:
//
//	media_types:
//	  - type: audio/ogg
//	    parameters:
//	      - name: codecs
//	        match: exact        # exact | enum | token
//	        value: opus
//	        case_insensitive: true
type registryDoc struct {
	MediaTypes []entryDoc `yaml:"media_types"`
}

type entryDoc struct {
	Type       string     `yaml:"type"`
	Parameters []paramDoc `yaml:"parameters"`
}

type paramDoc struct {
	Name            string   `yaml:"name"`
	Match           string   `yaml:"match"`
	Value           string   `yaml:"value"`
	Values          []string `yaml:"values"`
	CaseInsensitive bool     `yaml:"case_insensitive"`
}

// LoadRegistry reads and parses a YAML registry document. The resulting
// Registry replaces the builtin table entirely; it is assembled here, at
// process start, and never mutated afterward.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file %q: %w", path, err)
	}
	reg, err := ParseRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("registry file %q: %w", path, err)
	}
	return reg, nil
}

// ParseRegistry parses a YAML registry document from bytes and validates
// every entry structurally before building the immutable Registry.
func ParseRegistry(data []byte) (*Registry, error) {
	var doc registryDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &RegistryError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	if len(doc.MediaTypes) == 0 {
		return nil, &RegistryError{Message: "document declares no media_types"}
	}

	entries := make([]Entry, 0, len(doc.MediaTypes))
	for _, ed := range doc.MediaTypes {
		entry, err := buildEntry(ed)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return NewRegistry(entries)
}

func buildEntry(ed entryDoc) (Entry, error) {
	parsed, err := Tokenize(ed.Type)
	if err != nil {
		return Entry{}, &RegistryError{Entry: ed.Type, Message: fmt.Sprintf("invalid type key: %v", err)}
	}
	if len(parsed.Params) > 0 {
		return Entry{}, &RegistryError{Entry: ed.Type, Message: "type key must not carry parameters"}
	}

	entry := Entry{
		Type:    lowerASCII(parsed.Type),
		Subtype: lowerASCII(parsed.Subtype),
		Params:  make(map[string]Constraint, len(ed.Parameters)),
	}
	for _, pd := range ed.Parameters {
		name := lowerASCII(pd.Name)
		if name == "" || !isTokenString(name) {
			return Entry{}, &RegistryError{Entry: entry.Key(), Message: fmt.Sprintf("invalid parameter name %q", pd.Name)}
		}
		if _, dup := entry.Params[name]; dup {
			return Entry{}, &RegistryError{Entry: entry.Key(), Message: fmt.Sprintf("duplicate parameter %q", name)}
		}
		c, err := buildConstraint(entry.Key(), name, pd)
		if err != nil {
			return Entry{}, err
		}
		entry.Params[name] = c
	}
	return entry, nil
}

func buildConstraint(entryKey, name string, pd paramDoc) (Constraint, error) {
	c := Constraint{CaseInsensitive: pd.CaseInsensitive}
	switch Match(pd.Match) {
	case MatchExact:
		if pd.Value == "" {
			return Constraint{}, &RegistryError{Entry: entryKey, Message: fmt.Sprintf("parameter %q: exact match requires a value", name)}
		}
		c.Match = MatchExact
		c.Value = pd.Value
	case MatchEnum:
		if len(pd.Values) == 0 {
			return Constraint{}, &RegistryError{Entry: entryKey, Message: fmt.Sprintf("parameter %q: enum match requires values", name)}
		}
		c.Match = MatchEnum
		c.Values = append([]string(nil), pd.Values...)
	case MatchToken:
		c.Match = MatchToken
	default:
		return Constraint{}, &RegistryError{Entry: entryKey, Message: fmt.Sprintf("parameter %q: unknown match kind %q", name, pd.Match)}
	}
	return c, nil
}

func isTokenString(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isTokenChar(s[i]) {
			return false
		}
	}
	return true
}
