package domain

import "strings"

// Principal identifies the caller of an operation.
type Principal string

// AnonymousPrincipal is used when a request carries no identity.
const AnonymousPrincipal Principal = "2vxsx-fae"

// ParsePrincipal normalizes a raw identity, falling back to the anonymous principal.
func ParsePrincipal(raw string) Principal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return AnonymousPrincipal
	}
	return Principal(raw)
}

func (p Principal) String() string {
	return string(p)
}
