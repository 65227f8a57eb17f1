package mediatype

import "fmt"

// RejectKind categorizes why a media type was rejected. Every kind is
// terminal: validation is a pure function of the input, so re-submitting
// the same string can never change the outcome.
type RejectKind string

const (
	// RejectTooLong means the input exceeded MaxLength before parsing began.
	RejectTooLong RejectKind = "too_long"

	// RejectMalformed means the input violated the media-type grammar:
	// missing "/" separator, empty type or subtype, illegal character,
	// or an unterminated quoted value.
	RejectMalformed RejectKind = "malformed"

	// RejectDuplicateParameter means the same parameter name appeared more
	// than once (compared case-insensitively).
	RejectDuplicateParameter RejectKind = "duplicate_parameter"

	// RejectUnregisteredType means parameters were supplied for a
	// type/subtype pair that has no Registry entry. Parameter-free use of
	// the same pair is accepted.
	RejectUnregisteredType RejectKind = "unregistered_type_with_parameters"

	// RejectDisallowedParameter means a parameter name is not in the
	// matching entry's allow-list.
	RejectDisallowedParameter RejectKind = "disallowed_parameter"

	// RejectInvalidParameterValue means a parameter value failed its
	// Registry constraint.
	RejectInvalidParameterValue RejectKind = "invalid_parameter_value"
)

// RejectError is the typed rejection returned by every stage of the
// validation pipeline. Token names the offending token when one can be
// identified, so callers can surface it to the submitting client.
type RejectError struct {
	Kind    RejectKind
	Message string
	Token   string
}

// Error implements the error interface.
func (e *RejectError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("media type rejected (%s): %s: %q", e.Kind, e.Message, e.Token)
	}
	return fmt.Sprintf("media type rejected (%s): %s", e.Kind, e.Message)
}

// Is allows errors.Is comparisons against a bare &RejectError{Kind: k}.
func (e *RejectError) Is(target error) bool {
	t, ok := target.(*RejectError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// RegistryError reports an invalid entry in a registry document. It is a
// configuration-time error, never returned from Validate.
type RegistryError struct {
	Entry   string
	Message string
}

// Error implements the error interface.
func (e *RegistryError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("registry entry %q: %s", e.Entry, e.Message)
	}
	return fmt.Sprintf("registry: %s", e.Message)
}
