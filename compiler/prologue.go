package compiler

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// globals is the top-level shared namespace object.
const globals = "_globals"

// coreImport is the foundational import installed directly on [globals].
const coreImport = "core.core"

// nsTree is a nested namespace declaration tree.
type nsTree map[string]nsTree

// Prologue returns the namespace declarations for every reachable package
// and every import's parent namespace, one guarded statement per dotted
// prefix in sorted order, followed by the foundational core import.
func (s *Session) Prologue() (string, error) {
	pkgs := maps.Clone(s.used)
	for _, imp := range s.imports {
		pkgs[ImportPackage(imp.Name)] = struct{}{}
	}

	tree := make(nsTree)

	for _, pkg := range slices.Sorted(maps.Keys(pkgs)) {
		if pkg == "" {
			continue // the global object itself
		}

		ns := tree
		for _, seg := range strings.Split(pkg, ".") {
			next, ok := ns[seg]
			if !ok {
				next = make(nsTree)
				ns[seg] = next
			}

			ns = next
		}
	}

	var lines []string

	if err := declare(&lines, globals, tree); err != nil {
		return "", err
	}

	if i, ok := s.coreImport(); ok {
		lines = append(lines, generateImport(s.imports[i]))
	}

	s.log.Debug("prologue assembled", slog.Int("namespaces", len(lines)))

	return strings.Join(lines, "\n"), nil
}

// ImportsText returns every import other than the foundational one, each
// wrapped in its own function scope and assigned to its namespace slot.
func (s *Session) ImportsText() string {
	core, hasCore := s.coreImport()

	var b strings.Builder

	for i, imp := range s.imports {
		if hasCore && i == core {
			continue
		}

		b.WriteString(generateImport(imp))
		b.WriteByte('\n')
	}

	return b.String()
}

func (s *Session) coreImport() (int, bool) {
	for i, imp := range s.imports {
		if ImportPath(imp.Name) == coreImport {
			return i, true
		}
	}

	return 0, false
}

func declare(lines *[]string, path string, tree nsTree) error {
	for _, seg := range slices.Sorted(maps.Keys(tree)) {
		if seg == "" {
			return ErrInternal.With(slog.String("namespace", path)).
				Wrap(errors.New("empty name in packages"))
		}

		ns := EscapePackage(path + "." + seg)
		*lines = append(*lines, fmt.Sprintf("if (!%s) /** @const */ %s = {}", ns, ns))

		if err := declare(lines, ns, tree[seg]); err != nil {
			return err
		}
	}

	return nil
}

func generateImport(imp Import) string {
	code := "//=====[import " + imp.Name + "]=====================\n\n" + imp.Code
	path := ImportPath(imp.Name)

	return fmt.Sprintf("%s.%s = %s()", globals, path, wrap(code, path == coreImport))
}

// wrap encloses code in a function scope exporting through exports. The
// foundational import exports directly into the global object.
func wrap(code string, useGlobals bool) string {
	exports := "{}"
	if useGlobals {
		exports = globals
	}

	return fmt.Sprintf("(function() {/** @const */\nvar exports = %s;\n%s\nreturn exports;\n} )",
		exports, code)
}
