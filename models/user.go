// models/user.go
package models

import "time"

// Role is an account's authorization role.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
	RoleWorker  Role = "worker"
	// RoleProvider is accepted as an alias of RoleWorker.
	RoleProvider Role = "provider"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser, RoleWorker, RoleProvider:
		return true
	}
	return false
}

// ProviderRoles lists the roles that may be assigned bookings.
var ProviderRoles = []Role{RoleWorker, RoleProvider}

// User represents a platform account: customers, workers and staff share one collection.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Phone        string    `bson:"phone" json:"phone"`
	Role         Role      `bson:"role" json:"role"`
	IsActive     bool      `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Actor is the verified caller of an operation.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// IsStaff reports whether the actor administers bookings.
func (a Actor) IsStaff() bool {
	return a.Role == RoleAdmin || a.Role == RoleManager
}

// IsProvider reports whether the actor performs services.
func (a Actor) IsProvider() bool {
	return a.Role == RoleWorker || a.Role == RoleProvider
}

// IsCustomer reports whether the actor books services.
func (a Actor) IsCustomer() bool {
	return a.Role == RoleUser
}
