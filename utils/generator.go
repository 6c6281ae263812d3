package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateCode returns a random 6-digit numeric code, zero-padded.
func GenerateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand only fails when the system entropy source is broken
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}
