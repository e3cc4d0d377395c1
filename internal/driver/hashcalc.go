package driver

import (
	"crypto/sha256"
	"encoding/binary"
)

// Digest is a SHA-256 value used as a cache key.
type Digest [32]byte

// combineDigest computes H(content || schema || parts...). Parts are hashed
// length-prefixed so that ("ab", "c") and ("a", "bc") differ.
func combineDigest(content Digest, schema uint16, parts ...string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	var buf [8]byte
	binary.LittleEndian.PutUint16(buf[:2], schema)
	_, _ = h.Write(buf[:2])
	for _, p := range parts {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(p)))
		_, _ = h.Write(buf[:])
		_, _ = h.Write([]byte(p))
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// CacheKey returns the key results for content parsed with opts are stored
// under. The path takes part because it selects the language mode.
func CacheKey(contentHash Digest, path string, opts ParseOptions) Digest {
	mode := "ts"
	if !opts.TypeScript || IsJavaScriptPath(path) {
		mode = "js"
	}
	return combineDigest(contentHash, diskCacheSchemaVersion, opts.fingerprint(), mode)
}
