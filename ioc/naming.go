package ioc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Decapitalize lower-cases the first rune of name and leaves the rest as is:
// "UserService" -> "userService", "URLMapper" -> "uRLMapper".
func Decapitalize(name string) string {
	if name == "" {
		return name
	}
	r, size := utf8.DecodeRuneInString(name)
	lower := unicode.ToLower(r)
	if lower == r {
		return name
	}
	return string(lower) + name[size:]
}

// BeanName derives the registry name of a component type: the explicit
// component name when it is not blank, otherwise the decapitalized simple name.
func BeanName(t *TypeDescriptor) string {
	if t == nil {
		return ""
	}
	if !isBlank(t.Metadata.ComponentName) {
		return t.Metadata.ComponentName
	}
	return Decapitalize(t.Name)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
