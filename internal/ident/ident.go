// Package ident generates the short URL-safe ids used as user primary keys.
package ident

import (
	"crypto/rand"
	"encoding/base64"
)

// New returns a 9-character alphanumeric id: 7 random bytes are
// base64-encoded, every non-alphanumeric character (padding included) is
// replaced with '0', and the last 9 characters are kept. Not cryptographic;
// the collision risk over a users collection of this size is accepted.
func New() string {
	b := make([]byte, 7)
	_, _ = rand.Read(b)
	enc := []byte(base64.StdEncoding.EncodeToString(b))
	for i, c := range enc {
		if !isAlnum(c) {
			enc[i] = '0'
		}
	}
	return string(enc[len(enc)-9:])
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
