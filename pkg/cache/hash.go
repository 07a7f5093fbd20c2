package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a cache key of the form prefix:hash(parts...). The
// prefix carries the entry class and schema version ("document:v1"),
// the hashed parts carry whatever inputs shaped that stage - the
// manifest hash, layout gaps, the output format.
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256, 64 hex chars. Documents and artifacts for distinct
	// manifests must never collide.
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash returns the SHA-256 of data as a 64-character hex string. The
// pipeline uses it to fingerprint manifest bytes and document JSON.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
