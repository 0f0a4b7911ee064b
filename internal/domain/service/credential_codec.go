// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// Credential is the stored, derived form of a password. It never leaves the
// repository: the persistence model stores it and entity.User has no room for it.
type Credential struct {
	Hash string
	Salt string
}

// CredentialCodec derives and verifies salted password hashes.
type CredentialCodec interface {
	// Derive generates a fresh random salt and the slow hash of password under it.
	// It fails only when the randomness source is unavailable.
	Derive(password string) (Credential, error)

	// Verify recomputes the hash from password and cred.Salt and compares it to
	// cred.Hash in constant time. Malformed credentials simply do not verify.
	Verify(password string, cred Credential) bool
}
