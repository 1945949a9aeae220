package ioc_test

import (
	"errors"
	"sync/atomic"

	"github.com/sghaida/beans/ioc"
)

// Shared component types used across the ioc tests.

const testNamespace = "com.acme"

type orderService struct {
	id int
}

var orderSeq atomic.Int64

func newOrderService() *orderService {
	return &orderService{id: int(orderSeq.Add(1))}
}

type userAPI interface {
	Test() string
	Fail() error
}

type userService struct {
	orderService *orderService
	beanName     string
	container    *ioc.Container
	initialized  bool
}

func (u *userService) SetBeanName(name string) { u.beanName = name }
func (u *userService) SetContainer(c *ioc.Container) { u.container = c }
func (u *userService) AfterPropertiesSet() error {
	u.initialized = true
	return nil
}
func (u *userService) Test() string { return "user:" + u.beanName }
func (u *userService) Fail() error { return errBoom }
func (u *userService) OrderService() *orderService { return u.orderService }

var errBoom = errors.New("boom")

// userServiceProxy is a hand-written interception wrapper for userService.
type userServiceProxy struct {
	target *userService
	ic     *ioc.Interceptor
}

func (p *userServiceProxy) Test() (r0 string) {
	_ = p.ic.Invoke("Test", func() error {
		r0 = p.target.Test()
		return nil
	})
	return
}

func (p *userServiceProxy) Fail() error {
	return p.ic.Invoke("Fail", func() error {
		return p.target.Fail()
	})
}

type auditLog struct{ entries []string }

func appConfigType(namespace string) *ioc.TypeDescriptor {
	return &ioc.TypeDescriptor{
		Package:  testNamespace,
		Name:     "AppConfig",
		Metadata: ioc.Metadata{ComponentScan: namespace},
	}
}

func orderServiceType(scope string) *ioc.TypeDescriptor {
	return &ioc.TypeDescriptor{
		Package:  testNamespace + ".service",
		Name:     "OrderService",
		New:      ioc.New(newOrderService),
		Metadata: ioc.Metadata{Component: true, Scope: scope},
	}
}

func userServiceType(transactional bool) *ioc.TypeDescriptor {
	t := &ioc.TypeDescriptor{
		Package: testNamespace + ".service",
		Name:    "UserService",
		New:     ioc.New(func() *userService { return &userService{} }),
		Dependencies: []ioc.Dependency{
			ioc.Inject("orderService", func(u *userService, o *orderService) { u.orderService = o }),
		},
		Metadata: ioc.Metadata{Component: true, Transactional: transactional},
	}
	if transactional {
		t.Proxy = ioc.Proxy(func(u *userService, ic *ioc.Interceptor) any {
			return &userServiceProxy{target: u, ic: ic}
		})
	}
	return t
}

func auditLogType(lazy bool) *ioc.TypeDescriptor {
	return &ioc.TypeDescriptor{
		Package:  testNamespace + ".audit",
		Name:     "AuditLog",
		New:      ioc.New(func() *auditLog { return &auditLog{} }),
		Metadata: ioc.Metadata{Component: true, Lazy: lazy},
	}
}

// recordingHooks collects begin/commit emissions in call order.
type recordingHooks struct {
	events []string
	last   ioc.Invocation
}

func (h *recordingHooks) Begin(inv ioc.Invocation) {
	h.events = append(h.events, "begin:"+inv.Method)
}

func (h *recordingHooks) Commit(inv ioc.Invocation) {
	h.events = append(h.events, "commit:"+inv.Method)
	h.last = inv
}
