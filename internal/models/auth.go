package models

import "github.com/golang-jwt/jwt/v5"

// UserRole enumerates the roles known to the scheduling engine.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleEmployee UserRole = "EMPLOYEE"
	RoleStaff    UserRole = "STAFF"
)

// JWTClaims represents the payload of access tokens issued by the
// external authenticator. The engine consumes it as caller identity.
type JWTClaims struct {
	UserID         int64    `json:"user_id"`
	Role           UserRole `json:"role"`
	FullName       string   `json:"full_name"`
	TimetableAdmin bool     `json:"timetable_admin"`
	jwt.RegisteredClaims
}

// HasSchedulingPrivilege is the single capability predicate used by
// every privileged-vs-self decision. Role ADMIN and the timetable-admin
// capability flag are equivalent.
func (c *JWTClaims) HasSchedulingPrivilege() bool {
	if c == nil {
		return false
	}
	return c.Role == RoleAdmin || c.TimetableAdmin
}
