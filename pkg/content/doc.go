// Package content classifies embedded payloads by their media type and
// converts payload content between its wire form and raw bytes.
//
// Textual payloads travel as UTF-8; binary payloads travel hex-encoded.
// Classification looks only at the base type/subtype pair, never at
// parameters, so "audio/ogg;codecs=opus" classifies the same as
// "audio/ogg".
package content
