package ioc

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// CandidateSource enumerates the fully-qualified names of every type declared
// under a slash-separated namespace path ("com/shop"). An empty path yields no
// candidates.
type CandidateSource interface {
	Candidates(path string) ([]string, error)
}

// CandidateFunc adapts a plain function to CandidateSource.
type CandidateFunc func(path string) ([]string, error)

// Candidates implements CandidateSource.
func (f CandidateFunc) Candidates(path string) ([]string, error) { return f(path) }

// TypeLoader resolves a fully-qualified type name to its descriptor.
type TypeLoader interface {
	Load(name string) (*TypeDescriptor, error)
}

// LoaderFunc adapts a plain function to TypeLoader.
type LoaderFunc func(name string) (*TypeDescriptor, error)

// Load implements TypeLoader.
func (f LoaderFunc) Load(name string) (*TypeDescriptor, error) { return f(name) }

// DefaultScanDepth is how many sub-namespace levels a Catalog walks below the
// scanned namespace.
const DefaultScanDepth = 1

// Catalog is an in-memory set of type descriptors keyed by qualified name. It
// is both a CandidateSource and a TypeLoader.
//
// Expected usage:
//
//	cat := ioc.NewCatalog().Provide(UserServiceType, OrderServiceType)
//	c, err := ioc.New(AppConfigType, ioc.WithCatalog(cat))
type Catalog struct {
	mu    sync.RWMutex
	types map[string]*TypeDescriptor
	depth int
}

// DefaultCatalog is the catalog generated code registers into from init().
var DefaultCatalog = NewCatalog()

// Register adds descriptors to DefaultCatalog.
func Register(types ...*TypeDescriptor) {
	DefaultCatalog.Provide(types...)
}

// NewCatalog returns an empty catalog walking DefaultScanDepth levels.
func NewCatalog() *Catalog {
	return &Catalog{types: map[string]*TypeDescriptor{}, depth: DefaultScanDepth}
}

// SetDepth sets how many sub-namespace levels Candidates descends. A negative
// depth means unbounded.
func (c *Catalog) SetDepth(depth int) *Catalog {
	c.mu.Lock()
	c.depth = depth
	c.mu.Unlock()
	return c
}

// Provide stores descriptors under their qualified names and returns the
// catalog for chaining. A later descriptor with the same name replaces the
// earlier one; nil descriptors are skipped.
func (c *Catalog) Provide(types ...*TypeDescriptor) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range types {
		if t == nil {
			continue
		}
		c.types[t.QualifiedName()] = t
	}
	return c
}

// Candidates implements CandidateSource. Names are returned sorted.
func (c *Catalog) Candidates(path string) (names []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			names = nil
			err = fmt.Errorf("%w: %v", ErrCatalogPanic, rec)
		}
	}()

	path = strings.Trim(path, "/")
	if path == "" {
		return nil, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for name, t := range c.types {
		if c.within(path, strings.ReplaceAll(t.Package, ".", "/")) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// within reports whether pkgPath is path itself or a sub-namespace at most
// c.depth levels below it.
func (c *Catalog) within(path, pkgPath string) bool {
	if pkgPath == path {
		return true
	}
	rest, ok := strings.CutPrefix(pkgPath, path+"/")
	if !ok {
		return false
	}
	if c.depth < 0 {
		return true
	}
	return strings.Count(rest, "/")+1 <= c.depth
}

// Load implements TypeLoader and converts panics into errors.
func (c *Catalog) Load(name string) (t *TypeDescriptor, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			t = nil
			err = fmt.Errorf("%w: %v", ErrCatalogPanic, rec)
		}
	}()

	c.mu.RLock()
	t, ok := c.types[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTypeNotFound, name)
	}
	return t, nil
}

// Get returns the descriptor if present.
func (c *Catalog) Get(name string) (*TypeDescriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.types[name]
	return t, ok
}

// MustGet returns the descriptor or panics with a helpful message.
// Useful in examples/tests where a missing type should fail fast.
func (c *Catalog) MustGet(name string) *TypeDescriptor {
	t, ok := c.Get(name)
	if !ok {
		panic(fmt.Errorf("ioc: catalog missing type %q", name))
	}
	return t
}

// Len returns the number of registered descriptors.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.types)
}
