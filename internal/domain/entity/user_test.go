package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.com "))
}

func TestUserPatch_IsEmpty(t *testing.T) {
	var nilPatch *UserPatch
	assert.True(t, nilPatch.IsEmpty())
	assert.True(t, (&UserPatch{}).IsEmpty())

	name := "A"
	assert.False(t, (&UserPatch{FirstName: &name}).IsEmpty())
}

func TestUserPatch_Normalize(t *testing.T) {
	name := "  Ann "
	email := "ANN@Example.COM"
	patch := &UserPatch{FirstName: &name, Email: &email}

	patch.Normalize()

	assert.Equal(t, "Ann", *patch.FirstName)
	assert.Equal(t, "ann@example.com", *patch.Email)
	assert.Nil(t, patch.LastName)
	assert.Equal(t, "  Ann ", name, "caller's string must not be modified")
}

func TestUserInput_Normalize(t *testing.T) {
	in := &UserInput{FirstName: " A ", LastName: "B ", Email: " A@X.COM", Password: " p1 "}

	in.Normalize()

	assert.Equal(t, "A", in.FirstName)
	assert.Equal(t, "B", in.LastName)
	assert.Equal(t, "a@x.com", in.Email)
	assert.Equal(t, " p1 ", in.Password, "passwords are never trimmed")
}
