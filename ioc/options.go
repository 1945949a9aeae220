package ioc

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type options struct {
	source   CandidateSource
	loader   TypeLoader
	logger   *zap.Logger
	hooks    Hooks
	registry prometheus.Registerer
}

// Option configures a Container during New.
type Option func(*options)

// WithCatalog uses cat as both the candidate source and the type loader.
func WithCatalog(cat *Catalog) Option {
	return func(o *options) {
		o.source = cat
		o.loader = cat
	}
}

// WithCandidateSource sets the namespace enumeration capability.
func WithCandidateSource(src CandidateSource) Option {
	return func(o *options) { o.source = src }
}

// WithTypeLoader sets the capability resolving qualified names to descriptors.
func WithTypeLoader(l TypeLoader) Option {
	return func(o *options) { o.loader = l }
}

// WithLogger sets the logger for scanning, creation and the default hooks.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithHooks sets the begin/commit hooks used by interception wrappers.
func WithHooks(h Hooks) Option {
	return func(o *options) { o.hooks = h }
}

// WithMetrics registers the container's collectors on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) { o.registry = reg }
}

func buildOptions(opts []Option) options {
	o := options{
		source: DefaultCatalog,
		loader: DefaultCatalog,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.hooks == nil {
		o.hooks = LogHooks{Logger: o.logger}
	}
	return o
}
