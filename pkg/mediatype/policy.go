package mediatype

// Evaluate checks a parsed value's parameters against the registry.
//
// A value with no parameters passes for any syntactically valid
// type/subtype pair: every historical media type accepted before parameter
// support existed must keep validating identically, so registry membership
// is not required. A value with parameters passes only when its pair is
// registered and every parameter name and value satisfies the entry's
// policy. Rejection is always of the whole value; stripping unknown
// parameters and accepting the rest would make validation non-reproducible
// from the original string.
func Evaluate(parsed *Parsed, reg *Registry) error {
	if len(parsed.Params) == 0 {
		return nil
	}

	entry, ok := reg.Lookup(parsed.Type, parsed.Subtype)
	if !ok {
		return &RejectError{
			Kind:    RejectUnregisteredType,
			Message: "type is not registered for parameter use",
			Token:   parsed.Key(),
		}
	}

	for _, p := range parsed.Params {
		name := lowerASCII(p.Name)
		c, allowed := entry.Params[name]
		if !allowed {
			return &RejectError{
				Kind:    RejectDisallowedParameter,
				Message: "parameter is not permitted for " + entry.Key(),
				Token:   name,
			}
		}
		if !c.Satisfies(p.Value) {
			return &RejectError{
				Kind:    RejectInvalidParameterValue,
				Message: "value not accepted for parameter " + name,
				Token:   p.Value,
			}
		}
	}
	return nil
}
