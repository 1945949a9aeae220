package ioc

import (
	"fmt"
	"reflect"
)

// Metadata carries the declarative tags of a type. The scanner reads them once
// at discovery time.
type Metadata struct {
	// ComponentScan is the dotted namespace to scan. Only meaningful on the
	// root configuration type.
	ComponentScan string

	// Component marks the type as eligible for discovery.
	Component bool

	// ComponentName overrides the derived bean name when non-blank.
	ComponentName string

	// Lazy defers singleton creation until the first lookup.
	Lazy bool

	// Scope is the raw scope tag value, see ParseScope.
	Scope string

	// Transactional wraps every method call of the bean in begin/commit hooks.
	Transactional bool
}

// TypeDescriptor describes one discoverable type: where it lives, how to build
// it, what it needs injected and how to wrap it. Descriptors are usually
// generated by cmd/beangen and registered with a Catalog.
//
// A descriptor must not be mutated once it has been handed to a Catalog.
type TypeDescriptor struct {
	// Package is the dotted namespace of the type, e.g. "com.shop.service".
	Package string

	// Name is the simple type name, e.g. "UserService".
	Name string

	// New is the no-argument constructor.
	New func() (any, error)

	// Dependencies lists the injection points of the type, in assignment order.
	Dependencies []Dependency

	// Proxy builds the interception wrapper for transactional types.
	Proxy func(target any, ic *Interceptor) (any, error)

	Metadata Metadata
}

// QualifiedName returns Package + "." + Name.
func (t *TypeDescriptor) QualifiedName() string {
	if t == nil {
		return ""
	}
	if t.Package == "" {
		return t.Name
	}
	return t.Package + "." + t.Name
}

// Dependency is one injection point: a field whose value is the bean with the
// same name.
type Dependency struct {
	// Field is both the field name and the name of the bean to inject.
	Field string

	set func(target, dep any) error
}

// Assign writes dep into target through the typed setter. A panicking setter
// is reported as an error wrapping ErrAssignPanic.
func (d Dependency) Assign(target, dep any) (err error) {
	if d.set == nil {
		return &NilBindError{Field: d.Field}
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: field %q: %v", ErrAssignPanic, d.Field, rec)
		}
	}()
	return d.set(target, dep)
}

// Inject builds a Dependency whose setter asserts the target to *T and the
// resolved bean to D before calling bind.
//
// Example:
//
//	ioc.Inject("orderService", func(u *UserService, o *OrderService) { u.orderService = o })
func Inject[T any, D any](field string, bind func(target *T, dep D)) Dependency {
	d := Dependency{Field: field}
	if bind == nil {
		return d
	}
	d.set = func(target, dep any) error {
		t, ok := target.(*T)
		if !ok || t == nil {
			return &WrongTypeDependencyError{Field: field, Want: typeName[*T](), Got: typeOf(target)}
		}
		v, ok := dep.(D)
		if !ok {
			return &WrongTypeDependencyError{Field: field, Want: typeName[D](), Got: typeOf(dep)}
		}
		bind(t, v)
		return nil
	}
	return d
}

// New adapts a plain constructor to the TypeDescriptor.New signature.
func New[T any](ctor func() *T) func() (any, error) {
	return func() (any, error) {
		if ctor == nil {
			return nil, ErrNoConstructor
		}
		v := ctor()
		if v == nil {
			return nil, ErrNilInstance
		}
		return v, nil
	}
}

// Proxy adapts a typed wrapper constructor to the TypeDescriptor.Proxy signature.
func Proxy[T any](wrap func(target *T, ic *Interceptor) any) func(any, *Interceptor) (any, error) {
	return func(target any, ic *Interceptor) (any, error) {
		if wrap == nil {
			return nil, ErrNoProxy
		}
		t, ok := target.(*T)
		if !ok || t == nil {
			return nil, &WrongTypeBeanError{Name: ic.Bean(), Want: typeName[*T](), Got: typeOf(target)}
		}
		p := wrap(t, ic)
		if p == nil {
			return nil, ErrNilInstance
		}
		return p, nil
	}
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

func typeOf(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
