package utils

import "math/rand/v2"

const charset = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateShortCode generates a random string of fixed length from the
// 62-symbol alphabet (digits plus upper- and lowercase letters). The top-level
// rand functions are safe for concurrent use, so parallel requests can draw
// codes without coordination.
func GenerateShortCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.IntN(len(charset))]
	}
	return string(b)
}
