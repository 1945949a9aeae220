// Command beangen generates container type descriptors from YAML component specs.
//
// Go has no runtime annotations, so every discoverable type is described to the
// container by an *ioc.TypeDescriptor: where the type lives, how to construct it,
// which fields to inject and how to wrap it. Writing those by hand is repetitive
// and easy to get subtly wrong, so beangen derives them from a small spec file
// that sits next to the type.
//
// What beangen generates
//
// For each spec, one gofmt-ed file containing:
//
//   - var <ImplType>Type = &ioc.TypeDescriptor{...}
//   - func init() { ioc.Register(<ImplType>Type) }, so importing the package
//     makes the type visible to the default catalog
//   - for transactional types, an unexported <implType>Proxy implementing the
//     listed methods by forwarding each call through ioc.Interceptor.Invoke
//
// Spec overview
//
//	package: shop
//	namespace: com.shop.service
//	implType: UserService
//	constructor: NewUserService      # optional, defaults to new(UserService)
//	component: {name: ""}            # omit for non-component types
//	scope: singleton                 # singleton | prototype
//	lazy: false
//	transactional: true
//	inject:
//	  - {field: orderService, type: "*OrderService", setter: SetOrderService}
//	methods:
//	  - name: Test
//	    returns: [{type: string}]
//	implements: [UserAPI]            # optional compile-time assertions
//
// A root configuration type sets componentScan instead of component.
//
// beangen is stricter than the container about scope: the container reads any
// value other than "prototype" (in any case) as singleton, while beangen
// rejects anything but singleton or prototype so a typo cannot silently turn
// a prototype into a singleton.
//
// Invalid specs and unreadable files are reported as "beangen: <spec>: ..."
// with exit status 2.
//
// Wrapper methods capture the target's results in named results, so a method
// returning (T, error) hands the target's error to the interceptor unchanged
// and the caller sees exactly what the target returned.
//
// Typical go:generate usage
//
//	//go:generate go run ../../cmd/beangen -spec specs/user_service.bean.yaml -out user_service.gen.go
//
// Then:
//
//	go generate ./...
//
// The ioc import is taken from the bean spec (imports.ioc), else from the hand-written
// files of the output package, else from the module that contains beangen.
// Other packages named in spec types (repo.User, money.Amount) are imported
// when a hand-written file of the output package imports them.
package main
