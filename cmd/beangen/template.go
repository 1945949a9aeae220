package main

import (
	"strconv"
	"strings"
	"text/template"
)

// -------------------------
// Templates
// -------------------------

var beanTpl = template.Must(
	template.New("bean").
		Funcs(template.FuncMap{
			"quote":   strconv.Quote,
			"params":  paramList,
			"results": resultList,
			"body":    proxyBody,
		}).
		Parse(`// Code generated by beangen; DO NOT EDIT.
// Spec: {{.SpecPath}}
// Spec-SHA256: {{.SpecHash}}

package {{.Spec.Package}}

import (
{{- range .Imports }}
	{{ if .Name }}{{ .Name }} {{ end }}"{{ .Path }}"
{{- end }}
)

// {{.Spec.ImplType}}Type describes {{.Spec.ImplType}} to the container.
var {{.Spec.ImplType}}Type = &ioc.TypeDescriptor{
	Package: {{ quote .Spec.Namespace }},
	Name:    {{ quote .Spec.ImplType }},
{{- if .Spec.Constructor }}
	New: ioc.New({{.Spec.Constructor}}),
{{- else }}
	New: ioc.New(func() *{{.Spec.ImplType}} { return new({{.Spec.ImplType}}) }),
{{- end }}
{{- if .Spec.Inject }}
	Dependencies: []ioc.Dependency{
{{- range .Spec.Inject }}
		ioc.Inject({{ quote .Field }}, func(t *{{ $.Spec.ImplType }}, dep {{ .Type }}) { {{ if .Setter }}t.{{ .Setter }}(dep){{ else }}t.{{ .Assign }} = dep{{ end }} }),
{{- end }}
	},
{{- end }}
{{- if .Spec.Transactional }}
	Proxy: ioc.Proxy(func(t *{{.Spec.ImplType}}, ic *ioc.Interceptor) any {
		return &{{.ProxyType}}{target: t, ic: ic}
	}),
{{- end }}
	Metadata: ioc.Metadata{
{{- if .Spec.ComponentScan }}
		ComponentScan: {{ quote .Spec.ComponentScan }},
{{- end }}
{{- if .Spec.Component }}
		Component: true,
{{- if .Spec.Component.Name }}
		ComponentName: {{ quote .Spec.Component.Name }},
{{- end }}
{{- end }}
{{- if .Spec.Scope }}
		Scope: {{ quote .Spec.Scope }},
{{- end }}
{{- if .Spec.Lazy }}
		Lazy: true,
{{- end }}
{{- if .Spec.Transactional }}
		Transactional: true,
{{- end }}
	},
}

func init() {
	ioc.Register({{.Spec.ImplType}}Type)
}
{{- if .Spec.Transactional }}

// {{.ProxyType}} routes every call to {{.Spec.ImplType}} through the container's interceptor.
type {{.ProxyType}} struct {
	target *{{.Spec.ImplType}}
	ic     *ioc.Interceptor
}
{{- range .Spec.Implements }}

var _ {{ . }} = (*{{ $.ProxyType }})(nil)
{{- end }}
{{- range .Spec.Methods }}

func (w *{{ $.ProxyType }}) {{ .Name }}({{ params . }}){{ results . }} {
{{ body . }}
}
{{- end }}
{{- end }}
`))

func paramList(m MethodSpec) string {
	parts := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		parts = append(parts, p.Name+" "+p.Type)
	}
	return strings.Join(parts, ", ")
}

func callArgs(m MethodSpec) string {
	parts := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		if strings.HasPrefix(p.Type, "...") {
			parts = append(parts, p.Name+"...")
			continue
		}
		parts = append(parts, p.Name)
	}
	return strings.Join(parts, ", ")
}

func returnsError(m MethodSpec) bool {
	n := len(m.Returns)
	return n > 0 && strings.TrimSpace(m.Returns[n-1].Type) == "error"
}

// resultList renders the wrapper's result list. Values are captured through
// named results r0..rN; a trailing error is named err.
func resultList(m MethodSpec) string {
	n := len(m.Returns)
	switch {
	case n == 0:
		return ""
	case n == 1 && returnsError(m):
		return " error"
	}
	parts := make([]string, 0, n)
	for i, r := range m.Returns {
		if i == n-1 && returnsError(m) {
			parts = append(parts, "err error")
			continue
		}
		parts = append(parts, "r"+strconv.Itoa(i)+" "+r.Type)
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

// resultVars lists the named results receiving the target's values; the
// trailing error, if any, is captured as callErr.
func resultVars(m MethodSpec) string {
	n := len(m.Returns)
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if i == n-1 && returnsError(m) {
			parts = append(parts, "callErr")
			continue
		}
		parts = append(parts, "r"+strconv.Itoa(i))
	}
	return strings.Join(parts, ", ")
}

func proxyBody(m MethodSpec) string {
	call := "w.target." + m.Name + "(" + callArgs(m) + ")"
	invoke := "w.ic.Invoke(" + strconv.Quote(m.Name) + ", func() error {\n"

	var b strings.Builder
	n := len(m.Returns)
	switch {
	case n == 0:
		b.WriteString("\t_ = " + invoke)
		b.WriteString("\t\t" + call + "\n")
		b.WriteString("\t\treturn nil\n")
		b.WriteString("\t})")
	case n == 1 && returnsError(m):
		b.WriteString("\treturn " + invoke)
		b.WriteString("\t\treturn " + call + "\n")
		b.WriteString("\t})")
	case returnsError(m):
		b.WriteString("\terr = " + invoke)
		b.WriteString("\t\tvar callErr error\n")
		b.WriteString("\t\t" + resultVars(m) + " = " + call + "\n")
		b.WriteString("\t\treturn callErr\n")
		b.WriteString("\t})\n")
		b.WriteString("\treturn")
	default:
		b.WriteString("\t_ = " + invoke)
		b.WriteString("\t\t" + resultVars(m) + " = " + call + "\n")
		b.WriteString("\t\treturn nil\n")
		b.WriteString("\t})\n")
		b.WriteString("\treturn")
	}
	return b.String()
}
