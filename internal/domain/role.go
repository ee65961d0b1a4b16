package domain

import (
	"fmt"
	"regexp"
	"strings"
)

type Role string

const (
	RoleBuyer         Role = "Buyer"
	RoleSeller        Role = "Seller"
	RoleBiker         Role = "Biker"
	RoleBodaboda      Role = "Bodaboda"
	RoleMechanic      Role = "Mechanic"
	RoleRoadAssistant Role = "Road assistant"
	RoleAgent         Role = "Agent"
)

// RoleFamily groups role labels that share a dashboard. Bodaboda rides with
// Biker and "Road assistant" with Mechanic.
type RoleFamily int

const (
	FamilyUnknown RoleFamily = iota
	FamilyBuyer
	FamilySeller
	FamilyBiker
	FamilyAssistant
	FamilyAgent
)

func (f RoleFamily) String() string {
	switch f {
	case FamilyBuyer:
		return "buyer"
	case FamilySeller:
		return "seller"
	case FamilyBiker:
		return "biker"
	case FamilyAssistant:
		return "assistant"
	case FamilyAgent:
		return "agent"
	default:
		return "unknown"
	}
}

var knownRoles = []Role{
	RoleBuyer,
	RoleSeller,
	RoleBiker,
	RoleBodaboda,
	RoleMechanic,
	RoleRoadAssistant,
	RoleAgent,
}

func KnownRoles() []Role {
	out := make([]Role, len(knownRoles))
	copy(out, knownRoles)
	return out
}

// ParseRole maps user input onto a known role label, ignoring case and
// surrounding whitespace.
func ParseRole(raw string) (Role, error) {
	normalized := NormalizeRoleName(raw)
	for _, role := range knownRoles {
		if NormalizeRoleName(string(role)) == normalized {
			return role, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownRole, raw)
}

func (r Role) Family() RoleFamily {
	switch NormalizeRoleName(string(r)) {
	case "buyer":
		return FamilyBuyer
	case "seller":
		return FamilySeller
	case "biker", "bodaboda":
		return FamilyBiker
	case "mechanic", "road assistant":
		return FamilyAssistant
	case "agent":
		return FamilyAgent
	default:
		return FamilyUnknown
	}
}

func (r Role) Known() bool {
	return r.Family() != FamilyUnknown
}

func (r Role) String() string {
	return string(r)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slug is the lower-kebab form used to tag a role-specific shell.
func (r Role) Slug() string {
	value := string(r)
	if value == "" {
		value = "user"
	}

	return whitespaceRun.ReplaceAllString(strings.ToLower(value), "-")
}

func NormalizeRoleName(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func SameRole(a, b string) bool {
	return NormalizeRoleName(a) == NormalizeRoleName(b)
}
