package mediatype

import "testing"

func TestCanonicalize(t *testing.T) {
	reg := Builtin()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"already canonical", "audio/ogg;codecs=opus", "audio/ogg;codecs=opus"},
		{"pair lowercased", "Audio/OGG;codecs=opus", "audio/ogg;codecs=opus"},
		{"case-insensitive value lowercased", "audio/ogg;codecs=OPUS", "audio/ogg;codecs=opus"},
		{"parameter name lowercased", "audio/ogg;CODECS=opus", "audio/ogg;codecs=opus"},
		{"whitespace stripped", "audio/ogg ; codecs=opus", "audio/ogg;codecs=opus"},
		{"quoting dropped when not needed", `audio/ogg;codecs="opus"`, "audio/ogg;codecs=opus"},
		{"case-sensitive value preserved", "video/mp4;codecs=avc1.64001F", "video/mp4;codecs=avc1.64001F"},
		{"parameter-free lowercased", "Image/JPEG", "image/jpeg"},
		{"charset folded", `text/plain;charset="UTF-8"`, "text/plain;charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Tokenize(tt.raw)
			if err != nil {
				t.Fatalf("Tokenize(%q) unexpected error: %v", tt.raw, err)
			}
			if err := Evaluate(parsed, reg); err != nil {
				t.Fatalf("Evaluate(%q) unexpected error: %v", tt.raw, err)
			}
			if got := Canonicalize(parsed, reg); got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeSortsParameters(t *testing.T) {
	reg, err := NewRegistry([]Entry{{
		Type: "video", Subtype: "demo",
		Params: map[string]Constraint{
			"codecs": {Match: MatchToken},
			"width":  {Match: MatchToken},
			"height": {Match: MatchToken},
		},
	}})
	if err != nil {
		t.Fatal(err)
	}

	// Same parameters, different input orders, one canonical form.
	inputs := []string{
		"video/demo;width=640;height=480;codecs=vp9",
		"video/demo;codecs=vp9;width=640;height=480",
		"video/demo;height=480;codecs=vp9;width=640",
	}
	const want = "video/demo;codecs=vp9;height=480;width=640"

	for _, raw := range inputs {
		parsed, err := Tokenize(raw)
		if err != nil {
			t.Fatalf("Tokenize(%q) unexpected error: %v", raw, err)
		}
		if err := Evaluate(parsed, reg); err != nil {
			t.Fatalf("Evaluate(%q) unexpected error: %v", raw, err)
		}
		if got := Canonicalize(parsed, reg); got != want {
			t.Errorf("Canonicalize(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	reg := Builtin()
	inputs := []string{
		"audio/ogg;codecs=OPUS",
		`text/plain;charset="UTF-8"`,
		"Video/MP4;codecs=avc1.64001f",
		"IMAGE/JPEG",
		"application/atom+xml",
	}

	for _, raw := range inputs {
		parsed, err := Tokenize(raw)
		if err != nil {
			t.Fatalf("Tokenize(%q) unexpected error: %v", raw, err)
		}
		once := Canonicalize(parsed, reg)

		reparsed, err := Tokenize(once)
		if err != nil {
			t.Fatalf("canonical form %q does not re-tokenize: %v", once, err)
		}
		if err := Evaluate(reparsed, reg); err != nil {
			t.Fatalf("canonical form %q does not re-validate: %v", once, err)
		}
		if twice := Canonicalize(reparsed, reg); twice != once {
			t.Errorf("Canonicalize not idempotent for %q: %q != %q", raw, twice, once)
		}
	}
}

func TestRenderValueQuoting(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"opus", "opus"},
		{"avc1.64001f", "avc1.64001f"},
		{"a b", `"a b"`},
		{`a"b`, `"a\"b"`},
		{`a\b`, `"a\\b"`},
		{"a;b", `"a;b"`},
		{"", `""`},
	}
	for _, tt := range tests {
		if got := renderValue(tt.value); got != tt.want {
			t.Errorf("renderValue(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
