package main

import (
	"bufio"
	"bytes"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// -------------------------
// Import inference
// -------------------------
//
// The ioc runtime import is resolved in this order:
//
//  1. imports.ioc from the bean spec
//  2. an import aliased "ioc" or ending in "/ioc" in the hand-written files of
//     the output package (lets a project vendor or fork the runtime)
//  3. <generator module path>/ioc, from the go.mod above this source file

type GoImport struct {
	Name string // optional alias
	Path string
}

func inferImports(s *BeanSpec, outPath string) {
	s.Imports.IOC = strings.TrimSpace(s.Imports.IOC)
	if s.Imports.IOC != "" {
		return
	}
	if gi, ok := findImportByAliasOrSuffix(scanPackageImports(filepath.Dir(outPath)), "ioc", "/ioc"); ok {
		s.Imports.IOC = gi.Path
		return
	}
	s.Imports.IOC = inferRuntimeImport("ioc")
}

// inferRuntimeImport returns the import path of pkgRel inside the module that
// contains this generator.
func inferRuntimeImport(pkgRel string) string {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		die("cannot infer ioc runtime import: runtime.Caller failed")
	}

	modRoot, modPath, err := findModule(filepath.Dir(thisFile))
	if err != nil {
		die("cannot infer ioc runtime import: " + err.Error())
	}
	if !dirExists(filepath.Join(modRoot, filepath.FromSlash(pkgRel))) {
		die("cannot infer ioc runtime import: no " + pkgRel + " package under " + filepath.ToSlash(modRoot))
	}
	return modPath + "/" + pkgRel
}

// -------------------------
// go.mod helpers
// -------------------------

type cmdError struct{ msg string }

func (e *cmdError) Error() string { return e.msg }

// findModule walks up from startDir to the nearest go.mod and returns its
// directory and module path.
func findModule(startDir string) (modRoot, modPath string, err error) {
	for dir := startDir; ; {
		gomod := filepath.Join(dir, "go.mod")
		if fileExists(gomod) {
			b, rerr := os.ReadFile(gomod)
			if rerr != nil {
				return "", "", rerr
			}
			mod, ok := modulePath(b)
			if !ok {
				return "", "", &cmdError{msg: "go.mod has no module path at " + filepath.ToSlash(gomod)}
			}
			return dir, mod, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", &cmdError{msg: "could not find go.mod starting from " + filepath.ToSlash(startDir)}
		}
		dir = parent
	}
}

func modulePath(gomod []byte) (string, bool) {
	sc := bufio.NewScanner(bytes.NewReader(gomod))
	for sc.Scan() {
		rest, ok := strings.CutPrefix(strings.TrimSpace(sc.Text()), "module ")
		if !ok {
			continue
		}
		mod := strings.Trim(strings.TrimSpace(rest), `"`)
		return mod, mod != ""
	}
	return "", false
}

func dirExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// -------------------------
// Package import scanning
// -------------------------

// isGenerated reports whether name looks like generator output; those files
// are never fed back into inference.
func isGenerated(name string) bool {
	return strings.HasSuffix(name, ".gen.go") || strings.HasSuffix(name, "_gen.go")
}

// scanPackageImports returns the imports of every hand-written, non-test .go
// file in pkgDir, aliases included.
func scanPackageImports(pkgDir string) []GoImport {
	entries, err := os.ReadDir(pkgDir)
	if err != nil {
		return nil
	}

	var out []GoImport
	fset := token.NewFileSet()
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || isGenerated(name) {
			continue
		}
		out = append(out, parseImports(fset, filepath.Join(pkgDir, name))...)
	}
	return mergeImports(out, nil)
}

// readImportsFromExistingOut keeps imports that were added to a previous
// output by hand.
func readImportsFromExistingOut(outPath string) []GoImport {
	if strings.TrimSpace(outPath) == "" || !fileExists(outPath) {
		return nil
	}
	return parseImports(token.NewFileSet(), outPath)
}

// usedImports drops imports whose package name no spec type refers to.
func usedImports(s *BeanSpec, imports []GoImport) []GoImport {
	var out []GoImport
	for _, gi := range imports {
		name := gi.Name
		if name == "" {
			name = gi.Path[strings.LastIndex(gi.Path, "/")+1:]
		}
		if name == "_" || name == "." {
			continue
		}
		if specUsesPkgQualifier(s, name) {
			out = append(out, gi)
		}
	}
	return out
}

func parseImports(fset *token.FileSet, path string) []GoImport {
	f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return nil
	}
	out := make([]GoImport, 0, len(f.Imports))
	for _, imp := range f.Imports {
		gi := GoImport{Path: strings.Trim(imp.Path.Value, `"`)}
		if imp.Name != nil {
			gi.Name = imp.Name.Name
		}
		out = append(out, gi)
	}
	return out
}

// findImportByAliasOrSuffix prefers an alias match over a path-suffix match.
func findImportByAliasOrSuffix(imports []GoImport, alias, suffix string) (GoImport, bool) {
	for _, gi := range imports {
		if alias != "" && gi.Name == alias {
			return gi, true
		}
	}
	for _, gi := range imports {
		if suffix != "" && strings.HasSuffix(gi.Path, suffix) {
			return gi, true
		}
	}
	return GoImport{}, false
}

// mergeImports dedupes required and preserved imports and sorts them by path.
func mergeImports(required, preserved []GoImport) []GoImport {
	seen := map[GoImport]bool{}
	out := make([]GoImport, 0, len(required)+len(preserved))
	for _, list := range [][]GoImport{required, preserved} {
		for _, gi := range list {
			if gi.Path == "" || seen[gi] {
				continue
			}
			seen[gi] = true
			out = append(out, gi)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			return out[i].Name < out[j].Name
		}
		return out[i].Path < out[j].Path
	})
	return out
}
