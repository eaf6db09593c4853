// Package models defines the domain records persisted by the BookIt object
// store and the patch value types used for partial updates.
package models

// Role classifies a user account.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleProfessional Role = "professional"
	RoleUser         Role = "user"
)

// User is an account record. Password holds the derived credential string
// (salt:iterations:hash), never the plaintext. BusinessID is set for
// professional accounts by convention; the store does not enforce it.
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	Role       Role   `json:"role"`
	BusinessID string `json:"businessId,omitempty"`
	Password   string `json:"password,omitempty"`
	IsActive   bool   `json:"isActive"`
}

// Sanitized returns a copy of the user with the credential stripped.
// Session state and snapshot files only ever hold sanitized users.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// UserPatch is an explicit partial update for a user record. Nil fields are
// left untouched by the merge. CurrentPassword, when set, must match the
// stored credential before Password is accepted; it is never persisted.
type UserPatch struct {
	Email           *string
	Name            *string
	Role            *Role
	BusinessID      *string
	Password        *string
	IsActive        *bool
	CurrentPassword *string
}

// Apply merges the patch into u and returns the result.
func (p UserPatch) Apply(u User) User {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.BusinessID != nil {
		u.BusinessID = *p.BusinessID
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	return u
}
