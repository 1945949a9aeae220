// Package inspect serves a read-only HTTP view of a container's bean
// definitions, plus its Prometheus metrics.
package inspect

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sghaida/beans/ioc"
)

// DefinitionSource is the read-only part of *ioc.Container the inspector needs.
// The registry never changes after construction, so serving it from other
// goroutines is safe.
type DefinitionSource interface {
	DefinitionNames() []string
	Definition(name string) (ioc.BeanDefinition, bool)
}

// Bean is the JSON view of one bean definition.
type Bean struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Scope         string `json:"scope"`
	Lazy          bool   `json:"lazy"`
	Transactional bool   `json:"transactional"`
}

// Handler serves the definition endpoints.
type Handler struct {
	source DefinitionSource
	logger *zap.Logger
}

// NewHandler returns a handler over src. A nil logger is replaced by a no-op.
func NewHandler(src DefinitionSource, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{source: src, logger: logger}
}

// RegisterRoutes mounts GET /beans and GET /beans/{name} on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/beans", func(r chi.Router) {
		r.Get("/", h.ListBeans)
		r.Get("/{name}", h.GetBean)
	})
}

// NewRouter builds the full inspector router. /metrics is only mounted when
// gatherer is not nil.
func NewRouter(src DefinitionSource, gatherer prometheus.Gatherer, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	NewHandler(src, logger).RegisterRoutes(r)
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// ListBeans returns every definition, sorted by bean name.
func (h *Handler) ListBeans(w http.ResponseWriter, r *http.Request) {
	names := h.source.DefinitionNames()
	out := make([]Bean, 0, len(names))
	for _, name := range names {
		if def, ok := h.source.Definition(name); ok {
			out = append(out, view(name, def))
		}
	}
	h.writeJSON(w, http.StatusOK, out)
}

// GetBean returns one definition or 404.
func (h *Handler) GetBean(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	def, ok := h.source.Definition(name)
	if !ok {
		err := &ioc.UnknownBeanError{Name: name}
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	h.writeJSON(w, http.StatusOK, view(name, def))
}

func view(name string, def ioc.BeanDefinition) Bean {
	return Bean{
		Name:          name,
		Type:          def.Type().QualifiedName(),
		Scope:         def.Scope().String(),
		Lazy:          def.Lazy(),
		Transactional: def.Transactional(),
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("encode response", zap.Error(err))
	}
}
