package arch_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"
)

// constLikePrefixes names var prefixes treated as immutable after init,
// such as lipgloss colors and styles.
var constLikePrefixes = map[string][]string{
	"tui": {"style", "color"},
}

// TestNoMutableGlobalState flags package-level vars other than error
// sentinels, interface assertions, literals and composite literals.
func TestNoMutableGlobalState(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)
	for _, pkg := range internalPackages(t) {
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()

			fset := token.NewFileSet()
			for _, filePath := range goFilesIn(t, filepath.Join(dir, pkg)) {
				node, err := parser.ParseFile(fset, filePath, nil, 0)
				if err != nil {
					t.Fatalf("parsing %s: %v", filePath, err)
				}
				for _, name := range mutableGlobals(node, constLikePrefixes[pkg]) {
					t.Errorf("mutable global state in %s: var %s; use dependency injection or move to a function",
						filepath.Base(filePath), name)
				}
			}
		})
	}
}

func mutableGlobals(file *ast.File, prefixes []string) []string {
	var bad []string
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.VAR {
			continue
		}
		for _, spec := range gd.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for i, name := range vs.Names {
				var val ast.Expr
				if i < len(vs.Values) {
					val = vs.Values[i]
				}
				if name.Name == "_" || hasPrefix(name.Name, prefixes) || allowedInit(vs.Type, val) {
					continue
				}
				bad = append(bad, name.Name)
			}
		}
	}
	return bad
}

func hasPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func allowedInit(typ, val ast.Expr) bool {
	if ident, ok := typ.(*ast.Ident); ok && ident.Name == "error" {
		return true
	}
	if sel, ok := typ.(*ast.SelectorExpr); ok {
		if pkg, ok := sel.X.(*ast.Ident); ok && (pkg.Name == "sync" || pkg.Name == "atomic") {
			return true
		}
	}
	switch v := val.(type) {
	case *ast.BasicLit, *ast.CompositeLit:
		return true
	case *ast.CallExpr:
		sel, ok := v.Fun.(*ast.SelectorExpr)
		if !ok {
			return false
		}
		pkg, ok := sel.X.(*ast.Ident)
		if !ok {
			return false
		}
		switch pkg.Name + "." + sel.Sel.Name {
		case "errors.New", "fmt.Errorf", "regexp.MustCompile":
			return true
		}
	}
	return false
}

func TestMutableGlobals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{name: "error sentinel", src: `package p; import "errors"; var ErrFoo = errors.New("foo")`},
		{name: "wrapped sentinel", src: `package p; import "fmt"; var ErrBar = fmt.Errorf("bar: %w", nil)`},
		{name: "interface check", src: `package p; type I interface{}; type S struct{}; var _ I = (*S)(nil)`},
		{name: "slice literal", src: `package p; var depths = []int{100, 250}`},
		{name: "string literal", src: `package p; var name = "hello"`},
		{name: "prefixed style", src: `package p; import "x"; var styleBox = x.NewStyle()`},
		{name: "make is mutable", src: `package p; var cache = make(map[string]string)`, want: []string{"cache"}},
		{name: "bare pointer is mutable", src: `package p; var current *int`, want: []string{"current"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			node, err := parser.ParseFile(token.NewFileSet(), "p.go", tt.src, 0)
			if err != nil {
				t.Fatalf("parsing: %v", err)
			}
			got := mutableGlobals(node, []string{"style"})
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("mutableGlobals() = %v, want %v", got, tt.want)
			}
		})
	}
}
