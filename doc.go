// Package beans is a small inversion-of-control container for Go.
//
// Types describe themselves to the container through generated descriptors
// instead of runtime annotations:
//
//   - ioc: the container, the discovery scanner, bean definitions and the
//     interception layer
//   - cmd/beangen: generates descriptors and transactional wrappers from YAML
//     component specs
//   - config, internal/logging: host configuration and the zap logger
//   - internal/inspect: read-only HTTP view of the definition registry
//   - examples/shop: a runnable application wired end to end
//
// Start with the ioc package documentation and examples/shop/main.
package beans
