package domain

import "time"

// User mirrors the persisted representation in the users table.
type User struct {
	ID           string
	Username     string
	Email        *string
	FullName     *string
	PasswordHash string
	Bio          *string
	ProfileImage *string
	CreatedAt    time.Time
}

// TOTPSecret is a second-factor secret owned by exactly one user.
//
// A secret starts out pending (Enabled=false) and becomes enabled once the
// owner verifies a code for it. Only enabled secrets participate in login
// verification; pending secrets are eligible solely for the verification call
// that enables them.
type TOTPSecret struct {
	ID        string
	UserID    string
	Secret    string
	Enabled   bool
	CreatedAt time.Time
}

// HasEnabled reports whether any secret in the slice is enabled.
func HasEnabled(secrets []TOTPSecret) bool {
	for _, s := range secrets {
		if s.Enabled {
			return true
		}
	}
	return false
}
