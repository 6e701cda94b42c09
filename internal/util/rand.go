package util

import "crypto/rand"

// RandBytes returns n cryptographically random bytes.
// It panics if the system random source fails.
func RandBytes(n int) []byte {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return buf
}
