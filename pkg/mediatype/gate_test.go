package mediatype

import (
	"strings"
	"sync"
	"testing"
)

func TestGateValidate(t *testing.T) {
	gate := NewGate(Builtin())

	tests := []struct {
		name          string
		raw           string
		wantAccepted  bool
		wantDeclared  bool
		wantCanonical string
		wantKind      RejectKind
	}{
		{
			name:          "registered with valid codec",
			raw:           "audio/ogg;codecs=opus",
			wantAccepted:  true,
			wantDeclared:  true,
			wantCanonical: "audio/ogg;codecs=opus",
		},
		{
			name:          "uppercase codec folds to canonical",
			raw:           "audio/ogg;codecs=OPUS",
			wantAccepted:  true,
			wantDeclared:  true,
			wantCanonical: "audio/ogg;codecs=opus",
		},
		{
			name:         "unknown parameter rejects whole value",
			raw:          "audio/ogg;codecs=opus;unexpected=1",
			wantDeclared: true,
			wantKind:     RejectDisallowedParameter,
		},
		{
			name:          "unregistered parameter-free passes",
			raw:           "image/jpeg",
			wantAccepted:  true,
			wantDeclared:  true,
			wantCanonical: "image/jpeg",
		},
		{
			name:         "empty input means no media type declared",
			raw:          "",
			wantAccepted: true,
		},
		{
			name:         "over-length input",
			raw:          strings.Repeat("a", MaxLength+1),
			wantDeclared: true,
			wantKind:     RejectTooLong,
		},
		{
			name:         "duplicate parameter",
			raw:          "audio/ogg;codecs=opus;codecs=opus",
			wantDeclared: true,
			wantKind:     RejectDuplicateParameter,
		},
		{
			name:         "malformed input",
			raw:          "audio",
			wantDeclared: true,
			wantKind:     RejectMalformed,
		},
		{
			name:         "parameters on unregistered pair",
			raw:          "image/jpeg;quality=80",
			wantDeclared: true,
			wantKind:     RejectUnregisteredType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := gate.Validate(tt.raw)
			if v.Accepted != tt.wantAccepted {
				t.Fatalf("Validate(%q).Accepted = %v, want %v (reason: %v)",
					tt.raw, v.Accepted, tt.wantAccepted, v.Reason)
			}
			if v.Declared != tt.wantDeclared {
				t.Errorf("Validate(%q).Declared = %v, want %v", tt.raw, v.Declared, tt.wantDeclared)
			}
			if tt.wantAccepted {
				if v.Canonical != tt.wantCanonical {
					t.Errorf("Validate(%q).Canonical = %q, want %q", tt.raw, v.Canonical, tt.wantCanonical)
				}
				if v.Reason != nil {
					t.Errorf("Validate(%q).Reason = %v, want nil", tt.raw, v.Reason)
				}
				return
			}
			if v.Reason == nil {
				t.Fatalf("Validate(%q).Reason = nil, want kind %s", tt.raw, tt.wantKind)
			}
			if v.Reason.Kind != tt.wantKind {
				t.Errorf("Validate(%q) kind = %s, want %s", tt.raw, v.Reason.Kind, tt.wantKind)
			}
		})
	}
}

// Historical inputs were accepted before parameter support existed; any pair
// that tokenizes must keep validating, registered or not, and must always
// canonicalize the same way.
func TestGateBackwardCompatibility(t *testing.T) {
	gate := NewGate(Builtin())
	pairs := []struct{ raw, canonical string }{
		{"image/png", "image/png"},
		{"image/gif", "image/gif"},
		{"application/octet-stream", "application/octet-stream"},
		{"Application/PDF", "application/pdf"},
		{"message/rfc822", "message/rfc822"},
		{"x-custom/x-thing", "x-custom/x-thing"},
		{"model/gltf+json", "model/gltf+json"},
	}
	for _, p := range pairs {
		v := gate.Validate(p.raw)
		if !v.Accepted {
			t.Errorf("Validate(%q) rejected parameter-free pair: %v", p.raw, v.Reason)
			continue
		}
		if v.Canonical != p.canonical {
			t.Errorf("Validate(%q).Canonical = %q, want %q", p.raw, v.Canonical, p.canonical)
		}
	}
}

// Verdicts must be identical no matter how many goroutines share the gate:
// replay and live indexing run the same inputs concurrently and must never
// disagree.
func TestGateConcurrentDeterminism(t *testing.T) {
	gate := NewGate(Builtin())
	inputs := []string{
		"audio/ogg;codecs=opus",
		"audio/ogg;codecs=OPUS",
		"image/jpeg",
		"image/jpeg;quality=80",
		"",
		"not-a-media-type",
	}

	baseline := make([]Verdict, len(inputs))
	for i, raw := range inputs {
		baseline[i] = gate.Validate(raw)
	}

	const workers = 32
	const rounds = 200

	var wg sync.WaitGroup
	errCh := make(chan string, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				for i, raw := range inputs {
					v := gate.Validate(raw)
					b := baseline[i]
					if v.Accepted != b.Accepted || v.Declared != b.Declared || v.Canonical != b.Canonical {
						select {
						case errCh <- raw:
						default:
						}
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)
	if raw, diverged := <-errCh; diverged {
		t.Fatalf("concurrent Validate(%q) diverged from baseline", raw)
	}
}

func TestNewGateNilRegistry(t *testing.T) {
	gate := NewGate(nil)
	if v := gate.Validate("audio/ogg;codecs=opus"); !v.Accepted {
		t.Fatalf("nil-registry gate should fall back to builtin table: %v", v.Reason)
	}
}
