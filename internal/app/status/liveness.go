package status

import "time"

// Liveness is the derived state of a peer's tunnel.
type Liveness string

const (
	Live    Liveness = "live"
	Dead    Liveness = "dead"
	Unknown Liveness = "unknown"
)

// DeadAfter is how stale the last handshake may get before a peer counts as dead.
const DeadAfter = 180 * time.Second

// StatusMap maps a peer's WireGuard public key to its last handshake in epoch seconds.
// Every snapshot from the server replaces the previous map as a whole.
type StatusMap map[string]int64

// Classify derives the liveness of the peer with publicKey.
func Classify(m StatusMap, publicKey string, now time.Time) Liveness {
	if m == nil {
		return Unknown
	}

	last, ok := m[publicKey]
	if !ok {
		return Unknown
	}

	if now.Sub(time.Unix(last, 0)) > DeadAfter {
		return Dead
	}
	return Live
}
