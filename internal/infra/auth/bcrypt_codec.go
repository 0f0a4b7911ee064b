package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"usersvc/internal/domain/service"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCodec hashes HMAC-SHA256(salt, password) with bcrypt. bcrypt salts
// internally, but the explicit per-user salt is still bound into the input,
// and the hex digest keeps every password under bcrypt's 72-byte limit.
type bcryptCodec struct {
	cost       int
	saltLength int
}

// NewBcryptCodec returns a bcrypt-backed service.CredentialCodec.
// Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewBcryptCodec(cost, saltLength int) service.CredentialCodec {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &bcryptCodec{cost: cost, saltLength: saltLength}
}

// Derive generates a random salt and the bcrypt hash of the salted password.
func (c *bcryptCodec) Derive(password string) (service.Credential, error) {
	salt, encodedSalt, err := newSalt(c.saltLength)
	if err != nil {
		return service.Credential{}, err
	}

	hash, err := bcrypt.GenerateFromPassword(saltedInput(salt, password), c.cost)
	if err != nil {
		return service.Credential{}, err
	}

	return service.Credential{Hash: string(hash), Salt: encodedSalt}, nil
}

// Verify compares through bcrypt, which is constant time on the digest.
func (c *bcryptCodec) Verify(password string, cred service.Credential) bool {
	salt, ok := decodeSalt(cred.Salt)
	if !ok {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(cred.Hash), saltedInput(salt, password)) == nil
}

func saltedInput(salt []byte, password string) []byte {
	mac := hmac.New(sha256.New, salt)
	mac.Write([]byte(password))

	return []byte(hex.EncodeToString(mac.Sum(nil)))
}
