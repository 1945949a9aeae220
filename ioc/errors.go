package ioc

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrNoConstructor is returned when a descriptor has no New function.
	ErrNoConstructor = errors.New("ioc: type has no constructor")

	// ErrNilInstance is returned when a constructor or proxy produces nil.
	ErrNilInstance = errors.New("ioc: constructor returned nil")

	// ErrConstructorPanic is returned when a constructor or callback panics.
	ErrConstructorPanic = errors.New("ioc: panic during bean creation")

	// ErrAssignPanic is returned when an injection setter panics.
	ErrAssignPanic = errors.New("ioc: panic while assigning dependency")

	// ErrNoProxy is returned when a transactional type has no Proxy function.
	ErrNoProxy = errors.New("ioc: transactional type has no interception wrapper")

	// ErrTypeNotFound is returned by a TypeLoader for an unknown qualified name.
	ErrTypeNotFound = errors.New("ioc: type not found")

	// ErrNoCandidateSource is returned when a root declares a namespace to scan
	// but the scanner has no candidate source or type loader.
	ErrNoCandidateSource = errors.New("ioc: component scan without candidate source or type loader")

	// ErrCatalogPanic is returned if a candidate source or loader panics internally.
	ErrCatalogPanic = errors.New("ioc: panic during type lookup")

	// ErrCircularDependency is returned when a bean is requested while it is
	// still being created. Cycles are reported, never resolved.
	ErrCircularDependency = errors.New("ioc: circular dependency")
)

// UnknownBeanError is returned when no definition exists for the requested name.
type UnknownBeanError struct{ Name string }

// Error implements the error interface.
func (e *UnknownBeanError) Error() string {
	// Example: ioc: no bean definition named "userService"
	return "ioc: no bean definition named " + strconv.Quote(e.Name)
}

// InstantiationError is returned when a bean cannot be constructed, initialized
// or wrapped.
type InstantiationError struct {
	Bean string
	Type string
	Err  error
}

// Error implements the error interface.
func (e *InstantiationError) Error() string {
	// Example: ioc: cannot instantiate bean "userService" (com.shop.UserService): ioc: type has no constructor
	msg := "ioc: cannot instantiate bean " + strconv.Quote(e.Bean) + " (" + e.Type + ")"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *InstantiationError) Unwrap() error { return e.Err }

// InjectionError is returned when a dependency of a bean cannot be resolved or
// cannot be assigned to its field.
type InjectionError struct {
	Bean  string
	Field string
	Err   error
}

// Error implements the error interface.
func (e *InjectionError) Error() string {
	// Example: ioc: cannot inject field "orderService" of bean "userService": ...
	msg := "ioc: cannot inject field " + strconv.Quote(e.Field) + " of bean " + strconv.Quote(e.Bean)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, usually an *UnknownBeanError from the
// nested lookup.
func (e *InjectionError) Unwrap() error { return e.Err }

// DiscoveryError is returned when a type found during scanning cannot be loaded.
type DiscoveryError struct {
	Type string
	Err  error
}

// Error implements the error interface.
func (e *DiscoveryError) Error() string {
	msg := "ioc: cannot load type " + strconv.Quote(e.Type)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *DiscoveryError) Unwrap() error { return e.Err }

// WrongTypeDependencyError is returned by a typed setter when the target or the
// resolved dependency is not of the declared type.
type WrongTypeDependencyError struct {
	Field string
	Want  string
	Got   string
}

// Error implements the error interface.
func (e *WrongTypeDependencyError) Error() string {
	// Example: ioc: field "db" wants *shop.DB, got *shop.Cache
	return "ioc: field " + strconv.Quote(e.Field) + " wants " + e.Want + ", got " + e.Got
}

// NilBindError indicates a Dependency built with a nil bind function.
type NilBindError struct{ Field string }

// Error implements the error interface.
func (e *NilBindError) Error() string {
	return "ioc: nil bind function for field " + strconv.Quote(e.Field)
}

// WrongTypeBeanError is returned by Get when a bean exists but is not of the
// requested type.
type WrongTypeBeanError struct {
	Name string
	Want string
	Got  string
}

// Error implements the error interface.
func (e *WrongTypeBeanError) Error() string {
	return "ioc: bean " + strconv.Quote(e.Name) + " is " + e.Got + ", not " + e.Want
}

// UnsupportedScopeError is returned when a definition carries a scope the
// container does not know how to resolve.
type UnsupportedScopeError struct {
	Bean  string
	Scope Scope
}

// Error implements the error interface.
func (e *UnsupportedScopeError) Error() string {
	return "ioc: bean " + strconv.Quote(e.Bean) + " has unsupported scope " + e.Scope.String()
}

// CircularDependencyError is returned when a bean is requested again while it
// is still being created. It matches ErrCircularDependency with errors.Is.
type CircularDependencyError struct {
	// Chain lists the beans under construction, ending with the repeated one.
	Chain []string
}

// Error implements the error interface.
func (e *CircularDependencyError) Error() string {
	// Example: ioc: circular dependency: a -> b -> a
	return ErrCircularDependency.Error() + ": " + strings.Join(e.Chain, " -> ")
}

// Is reports whether target is ErrCircularDependency.
func (e *CircularDependencyError) Is(target error) bool {
	return target == ErrCircularDependency
}
