package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"stampworks/mediatype/pkg/mediatype"
)

func TestReadManifest(t *testing.T) {
	input := `
# issuance media manifest
audio/ogg;codecs=opus

image/jpeg
# trailing comment
video/mp4;codecs=avc1.64001f
`
	got, err := readManifest(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"audio/ogg;codecs=opus",
		"image/jpeg",
		"video/mp4;codecs=avc1.64001f",
	}
	if len(got) != len(want) {
		t.Fatalf("readManifest = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("readManifest[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCheckAll(t *testing.T) {
	gate := mediatype.NewGate(nil)
	buf := &bytes.Buffer{}

	rejected, err := checkAll(gate, []string{
		"audio/ogg;codecs=OPUS",
		"image/jpeg",
		"audio/ogg;codecs=opus;bogus=1",
		"not-a-pair",
	}, buf)
	if err != nil {
		t.Fatal(err)
	}

	if rejected != 2 {
		t.Errorf("rejected = %d, want 2", rejected)
	}
	out := buf.String()
	if !strings.Contains(out, "audio/ogg;codecs=opus") {
		t.Errorf("output missing canonical form:\n%s", out)
	}
	if !strings.Contains(out, "REJECT") {
		t.Errorf("output missing rejections:\n%s", out)
	}
}

func TestCheckAllJSON(t *testing.T) {
	old := checkFlags.format
	checkFlags.format = "json"
	defer func() { checkFlags.format = old }()

	gate := mediatype.NewGate(nil)
	buf := &bytes.Buffer{}
	rejected, err := checkAll(gate, []string{"audio/ogg;codecs=opus"}, buf)
	if err != nil {
		t.Fatal(err)
	}

	if rejected != 0 {
		t.Fatalf("rejected = %d", rejected)
	}
	if !strings.Contains(buf.String(), `"canonical": "audio/ogg;codecs=opus"`) {
		t.Errorf("JSON output = %s", buf.String())
	}
}

// failWriter fails every write, standing in for a closed pipe.
type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("write: broken pipe")
}

func TestCheckAllJSONWriteError(t *testing.T) {
	old := checkFlags.format
	checkFlags.format = "json"
	defer func() { checkFlags.format = old }()

	gate := mediatype.NewGate(nil)
	if _, err := checkAll(gate, []string{"image/jpeg"}, failWriter{}); err == nil {
		t.Error("checkAll should surface writer errors")
	}
}
