package ioc

import (
	"strings"

	"go.uber.org/zap"
)

// Scanner builds the definition registry from the namespace declared on a root
// configuration type.
type Scanner struct {
	source CandidateSource
	loader TypeLoader
	logger *zap.Logger
}

// NewScanner returns a scanner reading candidates from source and resolving
// them through loader. A nil logger is replaced by a no-op logger.
func NewScanner(source CandidateSource, loader TypeLoader, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{source: source, loader: loader, logger: logger}
}

// NamespacePath converts a dotted namespace into the slash-separated path a
// CandidateSource expects.
func NamespacePath(namespace string) string {
	return strings.ReplaceAll(strings.TrimSpace(namespace), ".", "/")
}

// Scan returns the registry for root. A root without a component-scan
// namespace yields an empty registry. A declared namespace with no candidate
// source or loader, and any candidate that cannot be loaded, abort the scan
// with a *DiscoveryError.
//
// Duplicate bean names are not rejected: the definition scanned last wins.
func (s *Scanner) Scan(root *TypeDescriptor) (map[string]BeanDefinition, error) {
	defs := map[string]BeanDefinition{}
	if root == nil || isBlank(root.Metadata.ComponentScan) {
		s.logger.Debug("no component scan declared", zap.String("root", root.QualifiedName()))
		return defs, nil
	}
	path := NamespacePath(root.Metadata.ComponentScan)
	if s.source == nil || s.loader == nil {
		return nil, &DiscoveryError{Type: path, Err: ErrNoCandidateSource}
	}

	names, err := s.source.Candidates(path)
	if err != nil {
		return nil, &DiscoveryError{Type: path, Err: err}
	}

	for _, name := range names {
		t, err := s.loader.Load(name)
		if err != nil {
			return nil, &DiscoveryError{Type: name, Err: err}
		}
		if t == nil {
			return nil, &DiscoveryError{Type: name, Err: ErrTypeNotFound}
		}
		if !t.Metadata.Component {
			continue
		}

		beanName := BeanName(t)
		def := NewBeanDefinition(t, ParseScope(t.Metadata.Scope), t.Metadata.Lazy)
		if prev, ok := defs[beanName]; ok {
			s.logger.Warn("bean definition overwritten",
				zap.String("bean", beanName),
				zap.String("previous", prev.Type().QualifiedName()),
				zap.String("type", t.QualifiedName()))
		}
		defs[beanName] = def
		s.logger.Debug("registered bean definition",
			zap.String("bean", beanName),
			zap.Stringer("definition", def))
	}

	s.logger.Info("component scan complete",
		zap.String("namespace", root.Metadata.ComponentScan),
		zap.Int("candidates", len(names)),
		zap.Int("definitions", len(defs)))
	return defs, nil
}
