package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Of returns the fingerprint of a failure with the given message and stack.
// Components are joined with a separator so that ("a", "bc") and ("ab", "c")
// differ.
func Of(message, stack string) string {
	return Generate(message, stack)
}

// Generate hashes the given components into a 32-character hex string.
// Empty components still take part, which keeps positions significant.
func Generate(components ...string) string {
	combined := strings.Join(components, "\x00|")
	hash := sha256.Sum256([]byte(combined))
	return hex.EncodeToString(hash[:16])
}
