package arch_test

import (
	"slices"
	"strings"
	"testing"
)

// allowedDeps is the complete set of sibling packages each internal package
// imports, sorted. The disjoint-set structure sits at the bottom, graph
// builds on it and graphfile builds on graph.
var allowedDeps = map[string][]string{
	"config":    nil,
	"dsu":       nil,
	"graph":     {"dsu"},
	"graphfile": {"graph"},
	"telemetry": nil,
	"ui":        nil,
}

// stdlibOnly packages hold the algorithms and may not pull in third-party
// modules.
var stdlibOnly = []string{"dsu", "graph"}

func TestInternalDependencies(t *testing.T) {
	t.Parallel()

	found := make(map[string]bool)
	for _, pkg := range loadPackages(t) {
		found[pkg.name] = true
		want, ok := allowedDeps[pkg.name]
		if !ok {
			t.Errorf("package %s has no entry in allowedDeps", pkg.name)
			continue
		}
		got, _ := pkg.imports()
		if !slices.Equal(got, want) {
			t.Errorf("package %s imports %v, want %v", pkg.name, got, want)
		}
	}
	for name := range allowedDeps {
		if !found[name] {
			t.Errorf("allowedDeps lists %s, which no longer exists", name)
		}
	}
}

func TestAlgorithmsUseStdlibOnly(t *testing.T) {
	t.Parallel()

	for _, pkg := range loadPackages(t) {
		if !slices.Contains(stdlibOnly, pkg.name) {
			continue
		}
		_, external := pkg.imports()
		for _, path := range external {
			// Standard library paths have no dot in their first element.
			first, _, _ := strings.Cut(path, "/")
			if strings.Contains(first, ".") {
				t.Errorf("package %s imports third-party %s", pkg.name, path)
			}
		}
	}
}
