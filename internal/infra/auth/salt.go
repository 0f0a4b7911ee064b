package auth

import (
	"crypto/rand"
	"encoding/base64"

	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/errors"
)

// randRead is swapped in tests to simulate an unavailable randomness source.
var randRead = rand.Read

// newSalt returns length random bytes and their text encoding.
func newSalt(length int) ([]byte, string, error) {
	salt := make([]byte, length)
	if _, err := randRead(salt); err != nil {
		return nil, "", errors.Wrap(domainerrors.ErrCredentialDerivation, err.Error())
	}

	return salt, base64.RawStdEncoding.EncodeToString(salt), nil
}

func decodeSalt(encoded string) ([]byte, bool) {
	salt, err := base64.RawStdEncoding.DecodeString(encoded)
	if err != nil || len(salt) == 0 {
		return nil, false
	}

	return salt, true
}
