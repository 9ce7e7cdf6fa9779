package entity

import "strings"

type Role string

const (
	// RoleBuyer mean the account purchases guest-post placements.
	RoleBuyer Role = "buyer"

	// RolePublisher mean the account sells placements on its sites.
	RolePublisher Role = "publisher"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RolePublisher:
		return true
	default:
		return false
	}
}

func RoleFromString(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}
