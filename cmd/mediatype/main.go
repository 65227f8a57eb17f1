// Mediatype validates and canonicalizes the media-type strings embedded in
// asset-issuance transactions.
//
// Usage:
//
//	# Validate media types from arguments
//	mediatype check "audio/ogg;codecs=opus" "image/jpeg"
//
//	# Validate a manifest file, one media type per line
//	mediatype check --file media.txt
//
//	# Re-check a manifest whenever it changes
//	mediatype check --file media.txt --watch
//
//	# Show the active registry table
//	mediatype registry list
//
//	# One-shot replay-drift audit of an index database
//	mediatype audit run --db data/index.db
//
//	# Scheduled audits with a metrics endpoint
//	mediatype audit watch --db data/index.db --schedule "0 3 * * *" \
//	    --metrics-listen 127.0.0.1:9310
//
//	# Show version information
//	mediatype version
package main

func main() {
	Execute()
}
