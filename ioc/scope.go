package ioc

import (
	"strconv"
	"strings"
)

// Scope controls how many instances of a bean the container creates.
type Scope int

const (
	// Singleton is the default scope: one shared instance, cached by the
	// container.
	Singleton Scope = iota

	// Prototype means a fresh instance on every GetBean call. Prototypes are
	// never cached.
	Prototype
)

// String returns the human-readable name of the scope.
func (s Scope) String() string {
	switch s {
	case Singleton:
		return "singleton"
	case Prototype:
		return "prototype"
	default:
		return "scope(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseScope maps a scope tag value to a Scope. Only a case-insensitive
// "prototype" yields Prototype; anything else, including "", is Singleton.
func ParseScope(v string) Scope {
	if strings.EqualFold(v, "prototype") {
		return Prototype
	}
	return Singleton
}
