package relay

import "strings"

// binarySubprotocol is the only subprotocol the bridge understands; noVNC and
// friends offer it to signal raw byte payloads.
const binarySubprotocol = "binary"

// SelectSubprotocol scans the client's offered subprotocols in order and
// returns "binary" at first match, or "" when nothing supported was offered.
// Candidates are trimmed of surrounding whitespace.
func SelectSubprotocol(offered []string) string {
	for _, p := range offered {
		if strings.TrimSpace(p) == binarySubprotocol {
			return binarySubprotocol
		}
	}
	return ""
}
