package ioc

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Container owns the definition registry and the singleton cache. It is built
// once by New and lives for the rest of the process; there is no shutdown.
//
// A Container is not safe for concurrent use: GetBean may create and cache
// beans, and nothing guards the cache.
type Container struct {
	root        *TypeDescriptor
	definitions map[string]BeanDefinition
	singletons  map[string]any

	// creating is the stack of bean names currently inside createBean.
	creating []string

	logger  *zap.Logger
	hooks   Hooks
	metrics *metrics
}

// New scans the namespace declared on root, then eagerly creates every
// non-lazy singleton in bean-name order. Any discovery or creation failure
// aborts construction and no container is returned.
func New(root *TypeDescriptor, opts ...Option) (*Container, error) {
	o := buildOptions(opts)

	c := &Container{
		root:       root,
		singletons: map[string]any{},
		logger:     o.logger,
		hooks:      o.hooks,
		metrics:    newMetrics(o.registry),
	}

	defs, err := NewScanner(o.source, o.loader, o.logger).Scan(root)
	if err != nil {
		c.logger.Error("component scan failed", zap.Error(err))
		return nil, err
	}
	c.definitions = defs

	for _, name := range c.DefinitionNames() {
		def := c.definitions[name]
		if def.Scope() != Singleton || def.Lazy() {
			continue
		}
		// already built as a dependency of an earlier bean
		if _, ok := c.singletons[name]; ok {
			continue
		}
		bean, err := c.createBean(name, def)
		if err != nil {
			c.logger.Error("eager singleton creation failed", zap.String("bean", name), zap.Error(err))
			return nil, err
		}
		c.singletons[name] = bean
	}

	c.logger.Info("container ready",
		zap.String("root", root.QualifiedName()),
		zap.Int("definitions", len(c.definitions)),
		zap.Int("singletons", len(c.singletons)))
	return c, nil
}

// GetBean returns the bean registered under name.
//
// Singletons come from the cache, and a lazy singleton is created and cached
// on its first lookup. Prototypes are created on every call and never cached.
func (c *Container) GetBean(name string) (any, error) {
	def, ok := c.definitions[name]
	if !ok {
		c.metrics.lookup(LookupUnknown)
		return nil, &UnknownBeanError{Name: name}
	}

	switch def.Scope() {
	case Singleton:
		if bean, ok := c.singletons[name]; ok {
			c.metrics.lookup(LookupHit)
			return bean, nil
		}
		bean, err := c.createBean(name, def)
		if err != nil {
			c.metrics.lookup(LookupFailed)
			return nil, err
		}
		c.singletons[name] = bean
		c.metrics.lookup(LookupCreated)
		return bean, nil

	case Prototype:
		bean, err := c.createBean(name, def)
		if err != nil {
			c.metrics.lookup(LookupFailed)
			return nil, err
		}
		c.metrics.lookup(LookupCreated)
		return bean, nil

	default:
		c.metrics.lookup(LookupFailed)
		return nil, &UnsupportedScopeError{Bean: name, Scope: def.Scope()}
	}
}

// MustGetBean returns the bean or panics.
func (c *Container) MustGetBean(name string) any {
	bean, err := c.GetBean(name)
	if err != nil {
		panic(err)
	}
	return bean
}

// Get returns the bean typed as T.
//
// It returns a *WrongTypeBeanError if the bean exists but is not a T. For a
// transactional bean T must be an interface the wrapper implements, not the
// concrete type.
func Get[T any](c *Container, name string) (T, error) {
	var zero T
	bean, err := c.GetBean(name)
	if err != nil {
		return zero, err
	}
	v, ok := bean.(T)
	if !ok {
		return zero, &WrongTypeBeanError{Name: name, Want: typeName[T](), Got: typeOf(bean)}
	}
	return v, nil
}

// createBean runs the creation pipeline: instantiate, inject, name and
// container callbacks, initialization, interception. The result is not cached
// here.
func (c *Container) createBean(name string, def BeanDefinition) (bean any, err error) {
	t := def.Type()
	qualified := t.QualifiedName()

	for _, n := range c.creating {
		if n == name {
			chain := append(append([]string{}, c.creating...), name)
			return nil, &CircularDependencyError{Chain: chain}
		}
	}
	c.creating = append(c.creating, name)
	defer func() { c.creating = c.creating[:len(c.creating)-1] }()

	defer func() {
		if rec := recover(); rec != nil {
			bean = nil
			err = &InstantiationError{Bean: name, Type: qualified, Err: fmt.Errorf("%w: %v", ErrConstructorPanic, rec)}
		}
	}()

	if t == nil || t.New == nil {
		return nil, &InstantiationError{Bean: name, Type: qualified, Err: ErrNoConstructor}
	}
	instance, err := t.New()
	if err != nil {
		return nil, &InstantiationError{Bean: name, Type: qualified, Err: err}
	}
	if instance == nil {
		return nil, &InstantiationError{Bean: name, Type: qualified, Err: ErrNilInstance}
	}

	for _, dep := range t.Dependencies {
		v, err := c.GetBean(dep.Field)
		if err != nil {
			return nil, &InjectionError{Bean: name, Field: dep.Field, Err: err}
		}
		if err := dep.Assign(instance, v); err != nil {
			return nil, &InjectionError{Bean: name, Field: dep.Field, Err: err}
		}
	}

	if aware, ok := instance.(BeanNameAware); ok {
		aware.SetBeanName(name)
	}
	if aware, ok := instance.(ContainerAware); ok {
		aware.SetContainer(c)
	}
	if ib, ok := instance.(InitializingBean); ok {
		if err := ib.AfterPropertiesSet(); err != nil {
			return nil, &InstantiationError{Bean: name, Type: qualified, Err: err}
		}
	}

	if t.Metadata.Transactional {
		if t.Proxy == nil {
			return nil, &InstantiationError{Bean: name, Type: qualified, Err: ErrNoProxy}
		}
		ic := &Interceptor{bean: name, hooks: c.hooks, metrics: c.metrics}
		wrapped, err := t.Proxy(instance, ic)
		if err != nil {
			return nil, &InstantiationError{Bean: name, Type: qualified, Err: err}
		}
		instance = wrapped
	}

	c.metrics.beanCreated(def.Scope())
	c.logger.Debug("bean created",
		zap.String("bean", name),
		zap.String("type", qualified),
		zap.Stringer("scope", def.Scope()),
		zap.Bool("wrapped", t.Metadata.Transactional))
	return instance, nil
}

// Root returns the configuration type the container was built from.
func (c *Container) Root() *TypeDescriptor { return c.root }

// Definition returns the definition registered under name.
func (c *Container) Definition(name string) (BeanDefinition, bool) {
	def, ok := c.definitions[name]
	return def, ok
}

// DefinitionNames returns every registered bean name, sorted.
func (c *Container) DefinitionNames() []string {
	names := make([]string, 0, len(c.definitions))
	for name := range c.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions returns a copy of the registry.
func (c *Container) Definitions() map[string]BeanDefinition {
	out := make(map[string]BeanDefinition, len(c.definitions))
	for k, v := range c.definitions {
		out[k] = v
	}
	return out
}

// HasSingleton reports whether a singleton instance for name is cached.
func (c *Container) HasSingleton(name string) bool {
	_, ok := c.singletons[name]
	return ok
}
