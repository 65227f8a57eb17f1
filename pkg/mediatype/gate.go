package mediatype

// Verdict is the outcome of one Validate call.
//
// Declared is false only for empty input, the distinguished "no media type
// declared" case, which is accepted with an empty Canonical form. When
// Accepted is false, Reason carries the typed rejection.
type Verdict struct {
	Accepted  bool
	Declared  bool
	Canonical string
	Reason    *RejectError
}

// Gate is the single entry point external collaborators use. It binds the
// tokenizer, the parameter policy, and the canonical serializer to one
// immutable Registry.
//
// A Gate is stateless beyond its registry and safe for unsynchronized use
// from any number of goroutines; each call's verdict depends only on its
// own input. The request-composition layer and the chain-indexing layer
// must validate through the same Gate so live processing and historical
// replay cannot diverge.
type Gate struct {
	registry *Registry
}

// NewGate creates a Gate over reg. A nil registry selects Builtin().
func NewGate(reg *Registry) *Gate {
	if reg == nil {
		reg = Builtin()
	}
	return &Gate{registry: reg}
}

// Registry returns the gate's registry, for display and audit.
func (g *Gate) Registry() *Registry { return g.registry }

// Validate runs the full pipeline on raw: tokenize, evaluate parameters
// against the registry, canonicalize. Any stage failure short-circuits
// into a rejected Verdict carrying that stage's reason.
func (g *Gate) Validate(raw string) Verdict {
	if raw == "" {
		return Verdict{Accepted: true}
	}

	parsed, err := Tokenize(raw)
	if err != nil {
		return rejected(err)
	}
	if err := Evaluate(parsed, g.registry); err != nil {
		return rejected(err)
	}
	return Verdict{
		Accepted:  true,
		Declared:  true,
		Canonical: Canonicalize(parsed, g.registry),
	}
}

func rejected(err error) Verdict {
	re, ok := err.(*RejectError)
	if !ok {
		re = &RejectError{Kind: RejectMalformed, Message: err.Error()}
	}
	return Verdict{Declared: true, Reason: re}
}
