package auth

import (
	"usersvc/config"
	"usersvc/internal/domain/service"
	"usersvc/internal/errors"
)

// NewCredentialCodec builds the codec selected by config.Credential.
func NewCredentialCodec(cfg *config.Config) (service.CredentialCodec, error) {
	cred := cfg.Credential
	if cred == nil {
		return nil, errors.New("credential config is missing")
	}

	switch cred.Algorithm {
	case config.AlgorithmArgon2id:
		return NewArgon2Codec(Argon2Params{
			Time:       cred.Argon2.Time,
			MemoryKiB:  cred.Argon2.MemoryKiB,
			Threads:    cred.Argon2.Threads,
			KeyLength:  cred.Argon2.KeyLength,
			SaltLength: cred.SaltLength,
		}), nil
	case config.AlgorithmBcrypt:
		return NewBcryptCodec(cred.BcryptCost, cred.SaltLength), nil
	default:
		return nil, errors.Errorf("unknown credential algorithm: %s", cred.Algorithm)
	}
}
