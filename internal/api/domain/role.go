package domain

// Role is a closed enumeration of the groups a principal can belong to.
type Role string

const (
	RoleSupport Role = "support"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a claim string onto a known role. Unknown strings are
// dropped by the caller rather than treated as an error, so a token carrying
// extra groups still authenticates.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSupport, RoleManager, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Principal is the authenticated caller as extracted from the bearer token.
type Principal struct {
	UserID string
	Roles  []Role
}

// Authorize returns ErrForbidden unless the principal holds at least one of
// the required roles. Pure, no I/O.
func Authorize(have []Role, required ...Role) error {
	for _, h := range have {
		for _, r := range required {
			if h == r {
				return nil
			}
		}
	}
	return ErrForbidden
}
