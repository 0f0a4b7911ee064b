// Package auth provides concrete implementations of the credential codec.
package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"usersvc/internal/domain/service"

	"golang.org/x/crypto/argon2"
)

// Argon2Params are the argon2id cost parameters.
type Argon2Params struct {
	Time       uint32
	MemoryKiB  uint32
	Threads    uint8
	KeyLength  uint32
	SaltLength int
}

// argon2Codec hashes with argon2id. The encoded hash carries its own
// parameters, so tuning the cost never invalidates stored credentials.
type argon2Codec struct {
	params Argon2Params
}

// NewArgon2Codec returns an argon2id-backed service.CredentialCodec.
func NewArgon2Codec(params Argon2Params) service.CredentialCodec {
	return &argon2Codec{params: params}
}

// Derive generates a random salt and the argon2id key of password under it.
func (c *argon2Codec) Derive(password string) (service.Credential, error) {
	salt, encodedSalt, err := newSalt(c.params.SaltLength)
	if err != nil {
		return service.Credential{}, err
	}

	key := argon2.IDKey([]byte(password), salt, c.params.Time, c.params.MemoryKiB, c.params.Threads, c.params.KeyLength)

	return service.Credential{
		Hash: encodeArgon2Hash(c.params, key),
		Salt: encodedSalt,
	}, nil
}

// Verify recomputes the key with the parameters stored in the hash.
func (c *argon2Codec) Verify(password string, cred service.Credential) bool {
	params, want, ok := decodeArgon2Hash(cred.Hash)
	if !ok {
		return false
	}

	salt, ok := decodeSalt(cred.Salt)
	if !ok {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, params.Time, params.MemoryKiB, params.Threads, uint32(len(want)))

	return subtle.ConstantTimeCompare(got, want) == 1
}

// encodeArgon2Hash renders $argon2id$v=19$m=<m>,t=<t>,p=<p>$<key>.
func encodeArgon2Hash(params Argon2Params, key []byte) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s",
		argon2.Version, params.MemoryKiB, params.Time, params.Threads,
		base64.RawStdEncoding.EncodeToString(key))
}

func decodeArgon2Hash(encoded string) (Argon2Params, []byte, bool) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", "<key>"
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[1] != "argon2id" {
		return Argon2Params{}, nil, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Argon2Params{}, nil, false
	}

	var params Argon2Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.MemoryKiB, &params.Time, &params.Threads); err != nil {
		return Argon2Params{}, nil, false
	}
	if params.MemoryKiB == 0 || params.Time == 0 || params.Threads == 0 {
		return Argon2Params{}, nil, false
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(key) == 0 {
		return Argon2Params{}, nil, false
	}

	return params, key, true
}
