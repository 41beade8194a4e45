// Package derive implements the structural analysis behind cmd/gctrace:
// given a loaded, type-checked package and a set of requested struct
// names, it decides, field by field, whether that field carries Gc edges
// at all and, if so, emits the five Traceable methods. It is the Go-native
// stand-in for a procedural-macro "derive": Go has no macro facility, so
// the field-by-field recursion a macro would otherwise generate per
// compile is instead performed once, ahead of time, by this generator.
package derive

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"go/types"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/loom-lang/gcrt/internal/diagnostic"
)

const traceablePkgPath = "github.com/loom-lang/gcrt/gc"
const traceableTypeName = "Traceable"
const generateMarker = "gctrace:generate"

// LoadMode is the packages.Load mode cmd/gctrace needs: full type
// information plus syntax, so each field's static type can be inspected.
const LoadMode = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
	packages.NeedImports | packages.NeedDeps | packages.NeedTypes | packages.NeedSyntax |
	packages.NeedTypesInfo

// Load loads the Go package rooted at dir with full type information.
func Load(dir string) (*packages.Package, error) {
	cfg := &packages.Config{Mode: LoadMode, Dir: dir}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("derive: loading package at %s: %w", dir, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("derive: no package found at %s", dir)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("derive: package at %s has type errors", dir)
	}
	return pkgs[0], nil
}

// Candidates returns the names of every struct type in pkg whose
// preceding doc comment carries the "gctrace:generate" marker, sorted by
// name.
func Candidates(pkg *packages.Package) []string {
	var names []string
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				if _, ok := ts.Type.(*ast.StructType); !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil {
					doc = gd.Doc
				}
				if doc == nil {
					continue
				}
				// doc.Text() drops directive-style lines such as
				// "//gctrace:generate", so scan the raw comments.
				for _, c := range doc.List {
					if strings.Contains(c.Text, generateMarker) {
						names = append(names, ts.Name.Name)
						break
					}
				}
			}
		}
	}
	sort.Strings(names)
	return names
}

// traceableInterface resolves *types.Interface for gc.Traceable from
// pkg's import graph.
func traceableInterface(pkg *packages.Package) (*types.Interface, error) {
	dep := pkg.Imports[traceablePkgPath]
	if dep == nil {
		return nil, fmt.Errorf("derive: package does not import %s", traceablePkgPath)
	}
	obj := dep.Types.Scope().Lookup(traceableTypeName)
	if obj == nil {
		return nil, fmt.Errorf("derive: %s.%s not found", traceablePkgPath, traceableTypeName)
	}
	iface, ok := obj.Type().Underlying().(*types.Interface)
	if !ok {
		return nil, fmt.Errorf("derive: %s.%s is not an interface", traceablePkgPath, traceableTypeName)
	}
	return iface, nil
}

// field is one struct field resolved to a traversal decision.
type field struct {
	Name string
}

// Generate builds the Trace/Root/Deroot/RootChildren/DerootChildren
// methods for each of typeNames, declared in pkg, and returns the
// formatted Go source for the whole batch plus any diagnostics collected
// along the way (diagnostics do not necessarily abort generation for the
// remaining types).
func Generate(pkg *packages.Package, typeNames []string) ([]byte, []diagnostic.Diagnostic, error) {
	iface, err := traceableInterface(pkg)
	if err != nil {
		return nil, nil, err
	}

	var diags []diagnostic.Diagnostic
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by gctrace. DO NOT EDIT.\n\npackage %s\n\n", pkg.Name)

	sorted := append([]string(nil), typeNames...)
	sort.Strings(sorted)

	for _, name := range sorted {
		fields, d, genErr := resolveFields(pkg, iface, name)
		diags = append(diags, d...)
		if genErr != nil {
			return nil, diags, genErr
		}
		writeMethods(&buf, name, fields)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), diags, fmt.Errorf("derive: formatting generated source: %w", err)
	}
	return formatted, diags, nil
}

// resolveFields inspects typeName's struct fields and decides, for each
// one, whether it provably carries no Gc edges (and is therefore skipped)
// or must participate in the generated Trace/Root*/Deroot* methods.
func resolveFields(pkg *packages.Package, iface *types.Interface, typeName string) ([]field, []diagnostic.Diagnostic, error) {
	obj := pkg.Types.Scope().Lookup(typeName)
	if obj == nil {
		return nil, nil, fmt.Errorf("derive: type %s not found in package %s", typeName, pkg.PkgPath)
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil, nil, fmt.Errorf("derive: %s is not a named type", typeName)
	}
	structType, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, nil, fmt.Errorf("derive: %s is not a struct", typeName)
	}

	var diags []diagnostic.Diagnostic
	var fields []field
	for i := 0; i < structType.NumFields(); i++ {
		f := structType.Field(i)
		// Generated methods land in the same package as typeName (see
		// Generate), so an unexported field is just as reachable as an
		// exported one — it is not skipped here.
		if isTraceable(f.Type(), iface) {
			fields = append(fields, field{Name: f.Name()})
			continue
		}
		if pos := pkg.Fset.Position(f.Pos()); pos.IsValid() {
			diags = append(diags, diagnostic.Diagnostic{
				Message: fmt.Sprintf("gctrace: field %s.%s of type %s carries no Gc edges, omitting from generated methods", typeName, f.Name(), f.Type().String()),
				Pos:     pos,
				Hint:    "this is expected for scalar fields; embed gc.Leaf explicitly if you want the field to satisfy Traceable on its own",
			})
		}
	}
	return fields, diags, nil
}

// isTraceable reports whether t, or a pointer to t, implements the
// Traceable interface — mirroring the fact that cmd/gctrace's own payload
// types typically satisfy Traceable via pointer receiver.
func isTraceable(t types.Type, iface *types.Interface) bool {
	if types.Implements(t, iface) {
		return true
	}
	return types.Implements(types.NewPointer(t), iface)
}

func writeMethods(buf *bytes.Buffer, typeName string, fields []field) {
	recv := strings.ToLower(typeName[:1])

	fmt.Fprintf(buf, "func (%s *%s) Trace() {\n", recv, typeName)
	for _, f := range fields {
		fmt.Fprintf(buf, "\t%s.%s.Trace()\n", recv, f.Name)
	}
	buf.WriteString("}\n\n")

	fmt.Fprintf(buf, "func (%s *%s) Root() {}\n\n", recv, typeName)
	fmt.Fprintf(buf, "func (%s *%s) Deroot() {}\n\n", recv, typeName)

	fmt.Fprintf(buf, "func (%s *%s) RootChildren() {\n", recv, typeName)
	for _, f := range fields {
		fmt.Fprintf(buf, "\t%s.%s.Root()\n", recv, f.Name)
		fmt.Fprintf(buf, "\t%s.%s.RootChildren()\n", recv, f.Name)
	}
	buf.WriteString("}\n\n")

	fmt.Fprintf(buf, "func (%s *%s) DerootChildren() {\n", recv, typeName)
	for _, f := range fields {
		fmt.Fprintf(buf, "\t%s.%s.Deroot()\n", recv, f.Name)
		fmt.Fprintf(buf, "\t%s.%s.DerootChildren()\n", recv, f.Name)
	}
	buf.WriteString("}\n\n")
}
