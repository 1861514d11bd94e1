package util

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// RandomCode returns a hex string of n characters sourced from crypto/rand.
// n must be even.
func RandomCode(n int) string {
	b := make([]byte, n/2)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Errorf("could not read random bytes: %w", err))
	}
	return hex.EncodeToString(b)
}
