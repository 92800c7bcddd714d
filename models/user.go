// models/user.go
package models

import "time"

// Role is a staff member's access level.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleLawyer Role = "LAWYER"
	RoleStaff  Role = "STAFF"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLawyer, RoleStaff:
		return true
	}
	return false
}

// Privileged reports whether r may manage users and chat groups.
func (r Role) Privileged() bool {
	return r == RoleAdmin
}

// CanManageMatters reports whether r may open cases and assign tasks.
func (r Role) CanManageMatters() bool {
	return r == RoleAdmin || r == RoleLawyer
}

// User is a firm member. ID is the Firebase Auth UID.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Role      Role      `bson:"role" json:"role"`
	FCMToken  string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
