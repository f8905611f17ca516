package digest

import (
	"strings"
	"unicode/utf8"
)

// MaxMessageLength is the transport's per-message size limit.
const MaxMessageLength = 4000

// ContinuationMarker opens every message after the first in a multi-message
// digest.
const ContinuationMarker = "(continued)"

// chunkMessages greedily packs content units into messages of at most limit
// characters. The first message opens with header; each overflow flushes the
// buffer and starts a new message with the continuation marker. Unit order
// is preserved and every unit appears exactly once.
func chunkMessages(header string, units []string, limit int) []string {
	var messages []string
	buffer := header

	// The largest unit that still fits after a flush, next to the marker.
	maxUnit := limit - utf8.RuneCountInString(ContinuationMarker) - 1

	for _, unit := range units {
		if utf8.RuneCountInString(unit) > maxUnit {
			unit = string([]rune(unit)[:maxUnit])
		}
		if utf8.RuneCountInString(buffer)+1+utf8.RuneCountInString(unit) > limit {
			messages = append(messages, buffer)
			buffer = ContinuationMarker
		}
		buffer += "\n" + unit
	}

	if strings.TrimSpace(buffer) != "" {
		messages = append(messages, buffer)
	}
	return messages
}
