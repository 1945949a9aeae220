package ioc

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Invocation describes one intercepted method call.
type Invocation struct {
	// ID identifies the transaction opened for this call.
	ID string

	Bean   string
	Method string
}

// Hooks receives the before/after side effects of every intercepted call.
// Commit is only called for calls that succeeded.
type Hooks interface {
	Begin(inv Invocation)
	Commit(inv Invocation)
}

// LogHooks reports begin/commit through a zap logger. It is the default Hooks
// implementation.
type LogHooks struct {
	Logger *zap.Logger
}

// Begin implements Hooks.
func (h LogHooks) Begin(inv Invocation) {
	h.logger().Info("begin transaction",
		zap.String("tx", inv.ID),
		zap.String("bean", inv.Bean),
		zap.String("method", inv.Method))
}

// Commit implements Hooks.
func (h LogHooks) Commit(inv Invocation) {
	h.logger().Info("commit transaction",
		zap.String("tx", inv.ID),
		zap.String("bean", inv.Bean),
		zap.String("method", inv.Method))
}

func (h LogHooks) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

// Interceptor routes the method calls of one wrapped bean through Hooks.
// Generated wrappers hold an Interceptor and call Invoke from every method.
type Interceptor struct {
	bean    string
	hooks   Hooks
	metrics *metrics
}

// NewInterceptor returns an interceptor for bean. A nil hooks value falls back
// to LogHooks with a no-op logger.
func NewInterceptor(bean string, hooks Hooks) *Interceptor {
	if hooks == nil {
		hooks = LogHooks{}
	}
	return &Interceptor{bean: bean, hooks: hooks}
}

// Bean returns the name of the bean this interceptor wraps.
func (ic *Interceptor) Bean() string {
	if ic == nil {
		return ""
	}
	return ic.bean
}

// Invoke emits Begin, runs fn and returns fn's error unchanged. Commit is only
// emitted when fn returns nil; a failed or panicking call leaves the
// transaction open and a panic propagates.
//
// Wrappers capture the target's results through named return values:
//
//	func (w *userServiceProxy) Test() (r0 string) {
//		_ = w.ic.Invoke("Test", func() error {
//			r0 = w.target.Test()
//			return nil
//		})
//		return
//	}
func (ic *Interceptor) Invoke(method string, fn func() error) error {
	inv := Invocation{ID: uuid.NewString(), Bean: ic.bean, Method: method}
	ic.hooks.Begin(inv)

	err := fn()
	ic.metrics.intercepted(ic.bean, method)
	if err != nil {
		return err
	}

	ic.hooks.Commit(inv)
	return nil
}
