package auth

import "github.com/google/uuid"

// Role is the administrative role attached to an account. Writes to warga and
// keluarga records are restricted to the three privileged roles.
type Role string

const (
	RoleAdminSistem Role = "adminSistem"
	RoleKetuaRT     Role = "ketuaRT"
	RoleKetuaRW     Role = "ketuaRW"
	RoleWarga       Role = "warga"
)

// PrivilegedRoles lists the roles allowed to mutate civic records.
var PrivilegedRoles = []Role{RoleAdminSistem, RoleKetuaRT, RoleKetuaRW}

// Valid reports whether the role is one of the recognized values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdminSistem, RoleKetuaRT, RoleKetuaRW, RoleWarga:
		return true
	}
	return false
}

// User is an account that can authenticate against the API.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         Role
}

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int64  `json:"expiresIn"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
}
