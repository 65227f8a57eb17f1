package content

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"stampworks/mediatype/pkg/mediatype"
)

// Kind is the storage classification of a payload.
type Kind string

const (
	// KindText marks payloads carried as UTF-8 text.
	KindText Kind = "text"

	// KindBinary marks payloads carried hex-encoded.
	KindBinary Kind = "binary"
)

// textualApplicationTypes lists application/* pairs that are stored as
// text. This is a closed set; everything else under application/ is
// binary.
var textualApplicationTypes = map[string]struct{}{
	"application/xml":           {},
	"application/javascript":    {},
	"application/json":          {},
	"application/manifest+json": {},
	"application/x-python-code": {},
	"application/x-sh":          {},
	"application/x-csh":         {},
	"application/x-tex":         {},
	"application/x-latex":       {},
}

// Classify returns the storage kind for a media type. It tolerates raw,
// not-yet-validated strings: only the base type/subtype before any ";" is
// examined, mirroring how historical payloads were classified.
func Classify(mediaType string) Kind {
	base := mediaType
	if i := strings.IndexByte(base, ';'); i >= 0 {
		base = base[:i]
	}
	base = strings.TrimSpace(base)

	if strings.HasPrefix(base, "text/") ||
		strings.HasPrefix(base, "message/") ||
		strings.HasSuffix(base, "+xml") {
		return KindText
	}
	if _, ok := textualApplicationTypes[base]; ok {
		return KindText
	}
	return KindBinary
}

// ToBytes converts wire-form content to raw bytes: UTF-8 bytes for text
// types, hex decoding for binary types.
func ToBytes(content, mediaType string) ([]byte, error) {
	if Classify(mediaType) == KindText {
		return []byte(content), nil
	}
	data, err := hex.DecodeString(content)
	if err != nil {
		return nil, fmt.Errorf("binary content is not valid hex: %w", err)
	}
	return data, nil
}

// FromBytes converts raw bytes back to wire form. It is the inverse of
// ToBytes: text types must hold valid UTF-8, binary types are hex-encoded.
func FromBytes(data []byte, mediaType string) (string, error) {
	if Classify(mediaType) == KindText {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("text content is not valid UTF-8")
		}
		return string(data), nil
	}
	return hex.EncodeToString(data), nil
}

// Check validates a media type and its content together, returning a
// problem list in the order found: an invalid media type first, then any
// content conversion failure. An empty media type defaults to text/plain.
func Check(gate *mediatype.Gate, mediaType, content string) []string {
	var problems []string

	mt := mediaType
	if mt == "" {
		mt = "text/plain"
	}
	if v := gate.Validate(mt); !v.Accepted {
		problems = append(problems, fmt.Sprintf("invalid media type: %s", mediaType))
	}
	if _, err := ToBytes(content, mt); err != nil {
		problems = append(problems, fmt.Sprintf("error converting content to bytes: %v", err))
	}
	return problems
}
