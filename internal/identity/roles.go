package identity

// Role is the fixed set of account types. Checks are set membership
// against per-role capabilities, not string comparison scattered around
// handlers.
type Role string

const (
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
	RoleAgent  Role = "agent"
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
)

type Capability string

const (
	CapListProperties Capability = "properties:list"
	CapPostProperty   Capability = "properties:post"
	CapManageListings Capability = "listings:manage"
	CapManageUsers    Capability = "users:manage"
	CapManageContent  Capability = "content:manage"
	CapManageSettings Capability = "settings:manage"
	CapBackoffice     Capability = "backoffice:access"
)

var roleCaps = map[Role]map[Capability]struct{}{
	RoleSeller: caps(CapListProperties, CapPostProperty),
	RoleBuyer:  caps(CapListProperties),
	RoleAgent:  caps(CapListProperties, CapPostProperty, CapManageListings),
	RoleStaff:  caps(CapListProperties, CapBackoffice, CapManageContent, CapManageListings),
	RoleAdmin: caps(CapListProperties, CapPostProperty, CapManageListings,
		CapManageUsers, CapManageContent, CapManageSettings, CapBackoffice),
}

var roleLabels = map[Role]string{
	RoleSeller: "Seller",
	RoleBuyer:  "Buyer",
	RoleAgent:  "Agent",
	RoleStaff:  "Staff Member",
	RoleAdmin:  "Administrator",
}

func caps(cs ...Capability) map[Capability]struct{} {
	m := make(map[Capability]struct{}, len(cs))
	for _, c := range cs {
		m[c] = struct{}{}
	}
	return m
}

// ParseSignupRole validates a self-serve role hint. Only seller, buyer
// and agent can be minted from a signup or token login; staff/admin are
// granted through the back-office role change. Anything else falls back
// to seller.
func ParseSignupRole(hint string) Role {
	switch r := Role(hint); r {
	case RoleSeller, RoleBuyer, RoleAgent:
		return r
	}
	return RoleSeller
}

func (r Role) Valid() bool {
	_, ok := roleCaps[r]
	return ok
}

func (r Role) Can(c Capability) bool {
	set, ok := roleCaps[r]
	if !ok {
		return false
	}
	_, ok = set[c]
	return ok
}

// IsStaff reports whether the role carries back-office access.
func (r Role) IsStaff() bool { return r.Can(CapBackoffice) }

// Label is the human-readable role name surfaced on staff/admin views.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}
