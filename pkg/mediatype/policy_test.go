package mediatype

import "testing"

func TestEvaluate(t *testing.T) {
	reg := Builtin()

	tests := []struct {
		name     string
		raw      string
		wantErr  bool
		wantKind RejectKind
	}{
		{
			name: "registered type with valid parameter",
			raw:  "audio/ogg;codecs=opus",
		},
		{
			name: "case-insensitive value accepted",
			raw:  "audio/ogg;codecs=OPUS",
		},
		{
			name: "case-insensitive pair lookup",
			raw:  "AUDIO/OGG;codecs=opus",
		},
		{
			name: "unregistered pair without parameters passes",
			raw:  "image/jpeg",
		},
		{
			name: "registered pair without parameters passes",
			raw:  "audio/opus",
		},
		{
			name: "enum constraint accepts member",
			raw:  "video/webm;codecs=vp9",
		},
		{
			name: "token constraint accepts any token",
			raw:  "video/mp4;codecs=avc1.64001f",
		},
		{
			name:     "unregistered pair with parameters",
			raw:      "image/jpeg;quality=80",
			wantErr:  true,
			wantKind: RejectUnregisteredType,
		},
		{
			name:     "parameter not in allow-list",
			raw:      "audio/ogg;codecs=opus;unexpected=1",
			wantErr:  true,
			wantKind: RejectDisallowedParameter,
		},
		{
			name:     "registered pair permitting no parameters",
			raw:      "audio/opus;codecs=opus",
			wantErr:  true,
			wantKind: RejectDisallowedParameter,
		},
		{
			name:     "value failing exact constraint",
			raw:      "audio/ogg;codecs=vorbis",
			wantErr:  true,
			wantKind: RejectInvalidParameterValue,
		},
		{
			name:     "value failing enum constraint",
			raw:      "video/webm;codecs=h264",
			wantErr:  true,
			wantKind: RejectInvalidParameterValue,
		},
		{
			name:     "quoted value failing token constraint",
			raw:      `video/mp4;codecs="avc1 hev1"`,
			wantErr:  true,
			wantKind: RejectInvalidParameterValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Tokenize(tt.raw)
			if err != nil {
				t.Fatalf("Tokenize(%q) unexpected error: %v", tt.raw, err)
			}
			err = Evaluate(parsed, reg)
			if tt.wantErr {
				re, ok := err.(*RejectError)
				if !ok {
					t.Fatalf("Evaluate(%q) = %v, want *RejectError", tt.raw, err)
				}
				if re.Kind != tt.wantKind {
					t.Errorf("Evaluate(%q) kind = %s, want %s", tt.raw, re.Kind, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Errorf("Evaluate(%q) unexpected error: %v", tt.raw, err)
			}
		})
	}
}

func TestConstraintSatisfies(t *testing.T) {
	tests := []struct {
		name  string
		c     Constraint
		value string
		want  bool
	}{
		{"exact match", Constraint{Match: MatchExact, Value: "opus"}, "opus", true},
		{"exact mismatch", Constraint{Match: MatchExact, Value: "opus"}, "vorbis", false},
		{"exact case-sensitive rejects folded", Constraint{Match: MatchExact, Value: "opus"}, "OPUS", false},
		{"exact case-insensitive accepts folded", Constraint{Match: MatchExact, Value: "opus", CaseInsensitive: true}, "OpUs", true},
		{"enum member", Constraint{Match: MatchEnum, Values: []string{"vp8", "vp9"}}, "vp9", true},
		{"enum non-member", Constraint{Match: MatchEnum, Values: []string{"vp8", "vp9"}}, "av1", false},
		{"enum case-insensitive", Constraint{Match: MatchEnum, Values: []string{"vp9"}, CaseInsensitive: true}, "VP9", true},
		{"token accepts token", Constraint{Match: MatchToken}, "avc1.64001f", true},
		{"token rejects space", Constraint{Match: MatchToken}, "avc1 hev1", false},
		{"token rejects empty", Constraint{Match: MatchToken}, "", false},
		{"unknown match kind rejects", Constraint{Match: Match("glob")}, "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Satisfies(tt.value); got != tt.want {
				t.Errorf("Satisfies(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
