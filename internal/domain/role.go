package domain

import (
	"fmt"
	"strings"
)

// Role enumerates the account categories that gate access.
type Role string

const (
	RoleAcademy Role = "academy"
	RoleAdmin   Role = "admin"
	RoleCoach   Role = "coach"
	RolePlayer  Role = "player"
	RoleScout   Role = "scout"
)

// AllRoles lists every role in declaration order.
var AllRoles = []Role{RoleAcademy, RoleAdmin, RoleCoach, RolePlayer, RoleScout}

// ParseRole validates a raw role string.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", raw)
	}
	return role, nil
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAcademy, RoleAdmin, RoleCoach, RolePlayer, RoleScout:
		return true
	default:
		return false
	}
}

// RoleSet is an immutable membership set of roles. A nil or empty set admits nothing
// on Contains; guards treat an empty set as "any authenticated role".
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return set
}

// Contains reports whether role is a member.
func (s RoleSet) Contains(role Role) bool {
	_, ok := s[role]
	return ok
}

// Empty reports whether the set has no members.
func (s RoleSet) Empty() bool {
	return len(s) == 0
}
