package entity

import "github.com/google/uuid"

type Role string

const (
	RoleUser  Role = "user"
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)

// Caller is the authenticated identity attached to a request. It is passed
// explicitly into every service call.
type Caller struct {
	UserId uuid.UUID
	Roles  []Role
}

func (c Caller) HasRole(role Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (c Caller) IsAdmin() bool {
	return c.HasRole(RoleAdmin)
}

// IsOwnerOnly reports an owner that does not also hold admin.
func (c Caller) IsOwnerOnly() bool {
	return c.HasRole(RoleOwner) && !c.IsAdmin()
}

func (c Caller) IsAuthenticated() bool {
	return c.UserId != uuid.Nil
}
