package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of parts. Each part is length-prefixed, so
// Hash(a, b) differs from Hash(a+b).
func Hash(parts ...[]byte) string {
	h := sha256.New()
	var n [8]byte
	for _, p := range parts {
		binary.BigEndian.PutUint64(n[:], uint64(len(p)))
		h.Write(n[:])
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HashJSON hashes the JSON encoding of v. Values that cannot be encoded
// hash as null.
func HashJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		data = []byte("null")
	}
	return Hash(data)
}

// hashKey derives "<kind>:<hash>" from the subject hash and its options.
func hashKey(kind, subject string, opts any) string {
	return kind + ":" + Hash([]byte(kind), []byte(subject), []byte(HashJSON(opts)))
}
