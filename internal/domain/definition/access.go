package definition

import (
	"fmt"
	"strings"
)

// AccessLevel is the visibility of a definition.
type AccessLevel string

const (
	AccessGlobal   AccessLevel = "GLOBAL"
	AccessPublic   AccessLevel = "PUBLIC"
	AccessInternal AccessLevel = "INTERNAL"
	AccessPrivate  AccessLevel = "PRIVATE"
)

// Authentication says whether a definition requires an authenticated request.
type Authentication string

const (
	Authenticated   Authentication = "AUTHENTICATED"
	Unauthenticated Authentication = "UNAUTHENTICATED"
)

// Access is the access metadata of a definition.
type Access struct {
	Level          AccessLevel
	Authentication Authentication
}

// DefaultAccess is PUBLIC and AUTHENTICATED.
func DefaultAccess() Access {
	return Access{Level: AccessPublic, Authentication: Authenticated}
}

// ParseAccess reads the markup access and authentication attributes.
// Empty values take the defaults.
func ParseAccess(level, auth string) (Access, error) {
	a := DefaultAccess()
	if level != "" {
		switch l := AccessLevel(strings.ToUpper(level)); l {
		case AccessGlobal, AccessPublic, AccessInternal, AccessPrivate:
			a.Level = l
		default:
			return Access{}, fmt.Errorf("invalid access value %q", level)
		}
	}
	if auth != "" {
		switch v := Authentication(strings.ToUpper(auth)); v {
		case Authenticated, Unauthenticated:
			a.Authentication = v
		default:
			return Access{}, fmt.Errorf("invalid authentication value %q", auth)
		}
	}
	return a, nil
}

// IsGlobal reports global access.
func (a Access) IsGlobal() bool {
	return a.Level == AccessGlobal
}

// RequiresAuthentication reports whether only authenticated requests may use it.
func (a Access) RequiresAuthentication() bool {
	return a.Authentication != Unauthenticated
}

func (a Access) String() string {
	return fmt.Sprintf("%s/%s", a.Level, a.Authentication)
}
