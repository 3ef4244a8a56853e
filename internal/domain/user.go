package domain

import "strings"

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleSeller Role = "VENDEDOR"
)

// ParseRole accepts the stored spelling and the English alias "SELLER".
func ParseRole(s string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(RoleAdmin):
		return RoleAdmin, true
	case string(RoleSeller), "SELLER":
		return RoleSeller, true
	}
	return "", false
}

type User struct {
	ID       string `db:"id"`
	Username string `db:"username"`
	Name     string `db:"name"`
	Hash     string `db:"password_hash"`
	Role     Role   `db:"role"`
}

// Session is an authenticated user bound to a session id. The role never
// changes for the lifetime of a session.
type Session struct {
	ID   string
	User *User
}

func (s *Session) Role() Role {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.Role
}
