// Package ioc is a small inversion-of-control container built around explicit
// type descriptors instead of runtime annotations.
//
// A TypeDescriptor carries everything the container needs to know about a
// type: its namespace and simple name, a no-argument constructor, the fields
// to inject (each a typed setter built with Inject), an optional interception
// wrapper (built with Proxy), and its Metadata tags. Descriptors are normally
// generated by cmd/beangen and registered into DefaultCatalog from init().
//
// Lifecycle
//
//   - New(root) scans the namespace named by root.Metadata.ComponentScan.
//     Only types tagged Component become bean definitions.
//   - Every non-lazy singleton is then created eagerly, in bean-name order.
//   - GetBean(name) returns the cached singleton, creates a lazy singleton on
//     first use, or builds a fresh prototype on every call.
//
// Creation pipeline
//
// For every bean: construct, inject dependencies by field name, call
// SetBeanName (BeanNameAware), SetContainer (ContainerAware),
// AfterPropertiesSet (InitializingBean), and finally replace transactional
// beans with their interception wrapper. A bean that fails any step is never
// cached.
//
// Interception
//
// Wrappers are plain Go types implementing the bean's method set. Each method
// calls Interceptor.Invoke, which emits Hooks.Begin, runs the target method,
// emits Hooks.Commit if the method succeeded and returns the target's results
// unchanged. A method returning an error is begun but never committed.
//
// Example
//
//	c, err := ioc.New(AppConfigType, ioc.WithLogger(logger))
//	if err != nil {
//		// discovery or eager creation failed
//	}
//	users, err := ioc.Get[UserAPI](c, "userService")
//
// The container is single-threaded: it takes no locks and must not be used
// from several goroutines at once.
package ioc
