// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
)

// User is the only entity in the system: a registered person.
// It deliberately has no credential fields; the password hash and salt live
// only in the persistence model and never travel above the repository.
type User struct {
	ID        int64     // Store-assigned identity, never reused.
	FirstName string    // Given name.
	LastName  string    // Family name.
	Email     string    // Normalized address, unique across all users.
	CreatedAt time.Time // Set once on creation.
	UpdatedAt time.Time // Advanced on every accepted mutation.
}

// UserInput carries every field required to create a user.
type UserInput struct {
	FirstName string `validate:"required,max=128"`
	LastName  string `validate:"required,max=128"`
	Email     string `validate:"required,max=128,email"`
	Password  string `validate:"required,password"`
}

// UserPatch carries a partial update. A nil field is left untouched.
type UserPatch struct {
	FirstName *string `validate:"omitnil,min=1,max=128"`
	LastName  *string `validate:"omitnil,min=1,max=128"`
	Email     *string `validate:"omitnil,min=1,max=128,email"`
	Password  *string `validate:"omitnil,password"`
}

// IsEmpty reports whether the patch names no field at all.
func (p *UserPatch) IsEmpty() bool {
	return p == nil || (p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Password == nil)
}

// Normalize trims names and canonicalizes the email in place.
func (in *UserInput) Normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = NormalizeEmail(in.Email)
}

// Normalize trims names and canonicalizes the email in place.
func (p *UserPatch) Normalize() {
	if p.FirstName != nil {
		trimmed := strings.TrimSpace(*p.FirstName)
		p.FirstName = &trimmed
	}
	if p.LastName != nil {
		trimmed := strings.TrimSpace(*p.LastName)
		p.LastName = &trimmed
	}
	if p.Email != nil {
		normalized := NormalizeEmail(*p.Email)
		p.Email = &normalized
	}
}

// NormalizeEmail is the canonical form under which uniqueness is enforced.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
