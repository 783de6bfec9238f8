package util

import "crypto/rand"

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID returns a 9-character lowercase alphanumeric string using
// cryptographic randomness. Identifiers are opaque; uniqueness is
// probabilistic, not guaranteed.
func GenerateID() (string, error) {
	bytes := make([]byte, 9)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	for i := range bytes {
		bytes[i] = idAlphabet[int(bytes[i])%len(idAlphabet)]
	}

	return string(bytes), nil
}
