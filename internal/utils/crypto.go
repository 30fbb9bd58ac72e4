package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex is used to keep token fingerprints instead of the tokens.
func SHA256Hex(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}
