package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateNumericCode returns a random code of exactly length decimal digits
// with no leading zero.
func GenerateNumericCode(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("invalid code length %d", length)
	}
	lo := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length-1)), nil)
	span := new(big.Int).Mul(lo, big.NewInt(9))
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("failed to generate random code: %w", err)
	}
	return n.Add(n, lo).String(), nil
}
