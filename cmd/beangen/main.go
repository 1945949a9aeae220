// beans/cmd/beangen/main.go
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

type Imports struct {
	// IOC overrides the inferred import path of the container runtime.
	IOC string `yaml:"ioc"`
}

// ComponentSpec marks the type as discoverable. A nil *ComponentSpec generates
// a plain (non-component) descriptor, e.g. for a root configuration type.
type ComponentSpec struct {
	Name string `yaml:"name"`
}

// InjectSpec is one injection point. Exactly one of Setter and Assign is set.
type InjectSpec struct {
	// Field is the bean name looked up in the container.
	Field string `yaml:"field"`
	Type  string `yaml:"type"`

	// Setter is a method on *ImplType called with the dependency.
	Setter string `yaml:"setter"`

	// Assign is a struct field of ImplType the dependency is written to.
	Assign string `yaml:"assign"`
}

type MethodParam struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type MethodReturn struct {
	Type string `yaml:"type"`
}

type MethodSpec struct {
	Name    string         `yaml:"name"`
	Params  []MethodParam  `yaml:"params"`
	Returns []MethodReturn `yaml:"returns"`
}

type BeanSpec struct {
	Package   string `yaml:"package"`
	Namespace string `yaml:"namespace"`
	ImplType  string `yaml:"implType"`

	// Constructor is a func() *ImplType in the same package. When empty the
	// generated descriptor uses new(ImplType).
	Constructor string `yaml:"constructor"`

	Imports Imports `yaml:"imports"`

	ComponentScan string         `yaml:"componentScan"`
	Component     *ComponentSpec `yaml:"component"`
	Scope         string         `yaml:"scope"`
	Lazy          bool           `yaml:"lazy"`
	Transactional bool           `yaml:"transactional"`

	Inject []InjectSpec `yaml:"inject"`

	// Methods is the method set of the interception wrapper, in declaration order.
	Methods []MethodSpec `yaml:"methods"`

	// Implements lists interfaces the wrapper is asserted against at compile time.
	Implements []string `yaml:"implements"`
}

func run(args []string) (err error) {
	fs := flag.NewFlagSet("beangen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	specPath := fs.String("spec", "", "path to <type>.bean.yaml")
	outPath := fs.String("out", "", "output .gen.go file path")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*specPath) == "" {
		return fmt.Errorf("missing -spec")
	}
	if strings.TrimSpace(*outPath) == "" {
		return fmt.Errorf("missing -out")
	}

	// genBean panics on any spec or I/O problem; report it like a flag error
	defer func() {
		if rec := recover(); rec != nil {
			err = specError(*specPath, rec)
		}
	}()
	genBean(*specPath, *outPath)
	return nil
}

func specError(specPath string, rec any) error {
	if e, ok := rec.(error); ok {
		return fmt.Errorf("%s: %w", specPath, e)
	}
	return fmt.Errorf("%s: %v", specPath, rec)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "beangen:", err)
		os.Exit(2)
	}
}

func genBean(specPath, outPath string) {
	raw := mustRead(specPath)

	var spec BeanSpec
	must(yaml.Unmarshal(raw, &spec))

	validateBeanSpec(&spec)
	inferImports(&spec, outPath)

	// deterministic ordering; methods keep the order of the bean spec
	sort.SliceStable(spec.Inject, func(i, j int) bool { return spec.Inject[i].Field < spec.Inject[j].Field })
	sort.Strings(spec.Implements)

	// packages named in spec types come from the package's own files or from
	// imports added by hand to a previous output
	preserved := usedImports(&spec, append(
		scanPackageImports(filepath.Dir(outPath)),
		readImportsFromExistingOut(outPath)...))

	required := []GoImport{{Path: spec.Imports.IOC}}
	for _, pkg := range []string{"context", "time"} {
		if specUsesPkgQualifier(&spec, pkg) {
			required = append(required, GoImport{Path: pkg})
		}
	}

	data := map[string]any{
		"Spec":      spec,
		"SpecPath":  filepath.ToSlash(specPath),
		"SpecHash":  sha256Hex(raw),
		"Imports":   mergeImports(required, preserved),
		"ProxyType": proxyTypeName(spec.ImplType),
	}

	src := mustExecTemplate(beanTpl, data)
	writeFormatted(outPath, src)
}

var (
	identRe    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reservedRe = regexp.MustCompile(`^(r[0-9]+|err|callErr|w|ioc)$`)
)

func validateBeanSpec(s *BeanSpec) {
	req := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			die("spec missing: " + name)
		}
	}
	req("package", s.Package)
	req("namespace", s.Namespace)
	req("implType", s.ImplType)

	if !identRe.MatchString(s.ImplType) {
		die("implType must be a Go identifier: " + s.ImplType)
	}
	if s.Constructor != "" && !identRe.MatchString(s.Constructor) {
		die("constructor must be a Go identifier: " + s.Constructor)
	}

	switch strings.ToLower(s.Scope) {
	case "", "singleton", "prototype":
	default:
		die("scope must be one of: singleton|prototype (the container would read " + strconv.Quote(s.Scope) + " as singleton)")
	}

	seen := map[string]bool{}
	for _, d := range s.Inject {
		if d.Field == "" || d.Type == "" {
			die("inject entry must have field/type")
		}
		if seen[d.Field] {
			die("duplicate inject field: " + d.Field)
		}
		seen[d.Field] = true
		if (d.Setter == "") == (d.Assign == "") {
			die("inject " + d.Field + ": set exactly one of setter/assign")
		}
	}

	if s.Transactional && len(s.Methods) == 0 {
		die("transactional spec must list methods")
	}
	if !s.Transactional && len(s.Implements) > 0 {
		die("implements requires transactional=true")
	}
	names := map[string]bool{}
	for _, m := range s.Methods {
		if m.Name == "" {
			die("method must have name")
		}
		if names[m.Name] {
			die("duplicate method: " + m.Name)
		}
		names[m.Name] = true
		for i, p := range m.Params {
			if p.Name == "" || p.Type == "" {
				die("method " + m.Name + ": param must have name/type")
			}
			if reservedRe.MatchString(p.Name) {
				die("method " + m.Name + ": param name " + p.Name + " is reserved")
			}
			if strings.HasPrefix(p.Type, "...") && i != len(m.Params)-1 {
				die("method " + m.Name + ": only the last param may be variadic")
			}
		}
		for _, r := range m.Returns {
			if r.Type == "" {
				die("method " + m.Name + ": return must have type")
			}
		}
	}
}

// -------------------------
// Misc helpers
// -------------------------

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func mustRead(path string) []byte {
	b, err := os.ReadFile(path)
	must(err)
	return b
}

func mustExecTemplate(tpl *template.Template, data any) []byte {
	var sb strings.Builder
	must(tpl.Execute(&sb, data))
	return []byte(sb.String())
}

// writeFormatted gofmts src into out. Unformattable output is still written
// so the template error can be inspected.
func writeFormatted(out string, src []byte) {
	fmtSrc, err := format.Source(src)
	if err != nil {
		_ = os.WriteFile(out, src, 0o644)
		die("gofmt/format failed: " + err.Error())
	}
	must(os.WriteFile(out, fmtSrc, 0o644))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func die(msg string) {
	panic(msg)
}

// proxyTypeName: UserService -> userServiceProxy
func proxyTypeName(implType string) string {
	if implType == "" {
		return implType
	}
	return strings.ToLower(implType[:1]) + implType[1:] + "Proxy"
}

// specUsesPkgQualifier reports whether any inject type or method signature
// mentions "pkg.".
func specUsesPkgQualifier(s *BeanSpec, pkg string) bool {
	needle := pkg + "."
	for _, d := range s.Inject {
		if strings.Contains(d.Type, needle) {
			return true
		}
	}
	for _, m := range s.Methods {
		for _, p := range m.Params {
			if strings.Contains(p.Type, needle) {
				return true
			}
		}
		for _, r := range m.Returns {
			if strings.Contains(r.Type, needle) {
				return true
			}
		}
	}
	return false
}
