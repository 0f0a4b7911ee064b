package auth

import (
	"strings"
	"testing"

	"usersvc/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptCodec_Derive(t *testing.T) {
	codec := NewBcryptCodec(bcrypt.MinCost, 16)

	cred, err := codec.Derive("StrongPass123!")
	require.NoError(t, err)
	assert.NotEmpty(t, cred.Hash)
	assert.NotEmpty(t, cred.Salt)
	assert.NotEqual(t, "StrongPass123!", cred.Hash)

	cost, err := bcrypt.Cost([]byte(cred.Hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.True(t, codec.Verify("StrongPass123!", cred))
}

func TestBcryptCodec_Verify(t *testing.T) {
	codec := NewBcryptCodec(bcrypt.MinCost, 16)
	password := "StrongPass123!"

	cred, err := codec.Derive(password)
	require.NoError(t, err)

	// Test correct password
	assert.True(t, codec.Verify(password, cred))

	// Test incorrect password
	assert.False(t, codec.Verify("WrongPassword123!", cred))

	// Test empty password
	assert.False(t, codec.Verify("", cred))

	// Test invalid hash
	assert.False(t, codec.Verify(password, service.Credential{Hash: "invalid-hash", Salt: cred.Salt}))

	// Test missing salt
	assert.False(t, codec.Verify(password, service.Credential{Hash: cred.Hash}))
}

func TestBcryptCodec_LongPasswords(t *testing.T) {
	codec := NewBcryptCodec(bcrypt.MinCost, 16)

	// Passwords sharing a 72-byte prefix must still be told apart.
	prefix := strings.Repeat("a", 72)
	cred, err := codec.Derive(prefix + "1")
	require.NoError(t, err)

	assert.True(t, codec.Verify(prefix+"1", cred))
	assert.False(t, codec.Verify(prefix+"2", cred))
}

func TestBcryptCodec_InvalidCostFallsBackToDefault(t *testing.T) {
	codec := NewBcryptCodec(100, 16).(*bcryptCodec)
	assert.Equal(t, bcrypt.DefaultCost, codec.cost)
}
