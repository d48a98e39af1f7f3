package core

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

var randomChars = []rune("abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789")

// RandomString generates a random string of length n from an unambiguous alphabet.
func RandomString(n int) (string, error) {
	max := big.NewInt(int64(len(randomChars)))
	b := make([]rune, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = randomChars[idx.Int64()]
	}
	return string(b), nil
}
