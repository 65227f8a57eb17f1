// Package mediatype validates and canonicalizes the media-type strings that
// issuance transactions attach to embedded payloads (e.g.
// "audio/ogg;codecs=opus").
//
// The canonical form produced here is embedded in indexed transaction
// metadata and participates in the consensus hash, so every node that
// replays the chain must derive the exact same bytes from the same input.
// Everything in this package is therefore pure and deterministic: no I/O,
// no ambient state, no locale-sensitive case conversion.
//
// # Pipeline
//
//	raw string
//	     ↓
//	Tokenize        → *Parsed or *RejectError
//	     ↓
//	Evaluate        → parameter policy check against the Registry
//	     ↓
//	Canonicalize    → one deterministic serialization
//
// Gate orchestrates the three stages behind a single Validate call, which
// is the only entry point the request-composition and chain-indexing layers
// use. Both layers must share one Gate value so that live processing and
// historical replay produce identical verdicts.
//
// # Parameter policy
//
// A parsed value with no parameters is accepted for any syntactically valid
// type/subtype pair, whether or not the pair is registered. This preserves
// every media type accepted before parameter support existed. A value with
// parameters is accepted only when its pair has a Registry entry and every
// parameter name and value satisfies that entry's constraints. There is no
// partial acceptance: an unknown parameter rejects the whole value.
//
// # Basic usage
//
//	gate := mediatype.NewGate(mediatype.Builtin())
//	v := gate.Validate("audio/ogg;codecs=OPUS")
//	if !v.Accepted {
//	    return v.Reason
//	}
//	// v.Canonical == "audio/ogg;codecs=opus"
//
// The Registry is immutable after construction, so a single Gate is safe
// for concurrent use without coordination.
package mediatype
