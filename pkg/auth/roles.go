package auth

import (
	"github.com/lestrrat-go/jwx/v3/jwt"
)

const (
	rolesClaim       = "roles"
	realmAccessClaim = "realm_access"
)

// Roles returns the roles granted by the token. Both a top level "roles" array
// and the Keycloak "realm_access.roles" array are honored.
func Roles(token jwt.Token) []string {
	var roles []string

	var direct any
	if err := token.Get(rolesClaim, &direct); err == nil {
		roles = append(roles, toStrings(direct)...)
	}

	var realm any
	if err := token.Get(realmAccessClaim, &realm); err == nil {
		if m, ok := realm.(map[string]any); ok {
			roles = append(roles, toStrings(m[rolesClaim])...)
		}
	}
	return roles
}

func toStrings(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{vv}
	default:
		return nil
	}
}
