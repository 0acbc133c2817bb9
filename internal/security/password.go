package security

import "crypto/subtle"

// ComparePasswords reports whether the given password equals the stored
// plaintext one.
func ComparePasswords(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}
