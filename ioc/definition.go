package ioc

import "strconv"

// BeanDefinition records how and when to construct one bean. It is created once
// during scanning and never mutated; definitions are values and share nothing
// but the immutable TypeDescriptor they point to.
type BeanDefinition struct {
	typ   *TypeDescriptor
	scope Scope
	lazy  bool
}

// NewBeanDefinition returns a definition for typ. The lazy flag is kept as
// declared but only singletons honour it.
func NewBeanDefinition(typ *TypeDescriptor, scope Scope, lazy bool) BeanDefinition {
	return BeanDefinition{typ: typ, scope: scope, lazy: lazy}
}

// Type returns the descriptor of the concrete type to instantiate.
func (d BeanDefinition) Type() *TypeDescriptor { return d.typ }

// Scope returns the bean scope.
func (d BeanDefinition) Scope() Scope { return d.scope }

// Lazy reports whether a singleton is created on first lookup instead of at
// container construction.
func (d BeanDefinition) Lazy() bool { return d.lazy }

// Transactional reports whether instances are wrapped in an interception proxy.
func (d BeanDefinition) Transactional() bool {
	return d.typ != nil && d.typ.Metadata.Transactional
}

// String implements fmt.Stringer.
func (d BeanDefinition) String() string {
	return "BeanDefinition{type=" + d.typ.QualifiedName() +
		", lazy=" + strconv.FormatBool(d.lazy) +
		", scope=" + strconv.Quote(d.scope.String()) + "}"
}
