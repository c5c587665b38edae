package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Key builds a cache key of the form kind:sha256(parts...). Parts are
// JSON-encoded before hashing, so any serializable value can take part.
func Key(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", kind, Hash(data))
}

// Hash computes a SHA-256 hash of the input data as 64 hex characters.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// keyType returns the kind prefix of a key built by Key.
func keyType(key string) string {
	kind, _, found := strings.Cut(key, ":")
	if !found {
		return "unknown"
	}
	return kind
}
