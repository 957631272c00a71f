package compiler

import (
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions bounds the "did you mean" list of a [NotFoundError].
const maxSuggestions = 3

// index maps a package to the short names it declares.
type index map[string]map[string]struct{}

// resolve returns the package declaring the component ref refers to, seen
// from package current. Candidates are packages declaring the short name
// whose path equals the hint or ends with "."+hint. Several candidates are
// narrowed, in order, to the one equal to the hint, the current package, or
// the default namespace.
func resolve(idx index, current, ref, defaultNS string) (string, error) {
	hint, short := SplitName(ref)

	var candidates []string

	for pkg, names := range idx {
		if _, ok := names[short]; !ok {
			continue
		}

		if hint != "" && pkg != hint && !strings.HasSuffix(pkg, "."+hint) {
			continue
		}

		candidates = append(candidates, pkg)
	}

	switch len(candidates) {
	case 0:
		return "", &NotFoundError{Reference: ref, Package: current}
	case 1:
		return candidates[0], nil
	}

	switch {
	case hint != "" && slices.Contains(candidates, hint):
		return hint, nil
	case slices.Contains(candidates, current):
		return current, nil
	case defaultNS != "" && slices.Contains(candidates, defaultNS):
		return defaultNS, nil
	}

	slices.Sort(candidates)

	for i, pkg := range candidates {
		candidates[i] = qualify(pkg, short)
	}

	return "", &AmbiguousError{Reference: ref, Package: current, Candidates: candidates}
}

// Lookup resolves ref, seen from package current, to a fully qualified
// component name without marking it reachable.
func (s *Session) Lookup(current, ref string) (string, error) {
	name, _, err := s.lookup(current, ref)

	return name, err
}

// Find resolves ref like [Session.Lookup] and marks the component and its
// package reachable. The universal root type is never marked.
func (s *Session) Find(current, ref string) (string, error) {
	name, pkg, err := s.lookup(current, ref)
	if err != nil || name == s.cfg.rootType {
		return name, err
	}

	s.mark(name, pkg)

	return name, nil
}

func (s *Session) lookup(current, ref string) (name, pkg string, err error) {
	if s.isRoot(ref) {
		return s.cfg.rootType, "", nil
	}

	pkg, err = resolve(s.packages, current, ref, s.cfg.defaultNS)
	if err != nil {
		if nf, ok := err.(*NotFoundError); ok { //nolint:errorlint
			nf.Suggestions = s.suggest(ref)
		}

		s.log.Debug("resolution failed",
			slog.String("reference", ref),
			slog.String("package", current),
			slog.Any("error", err),
		)

		return "", "", err
	}

	_, short := SplitName(ref)
	name = qualify(pkg, short)

	s.log.Trace("resolved",
		slog.String("reference", ref),
		slog.String("package", current),
		slog.String("component", name),
	)

	return name, pkg, nil
}

// isRoot reports whether ref denotes the universal root base type: its
// short name, its fully qualified name, or an empty base.
func (s *Session) isRoot(ref string) bool {
	_, short := SplitName(s.cfg.rootType)

	return ref == "" || ref == short || ref == s.cfg.rootType
}

// suggest returns registered component names similar to ref, best first.
func (s *Session) suggest(ref string) []string {
	names := slices.Sorted(maps.Keys(s.components))

	_, short := SplitName(ref)

	matches := fuzzy.Find(short, names)

	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}

		out = append(out, m.Str)
	}

	return out
}
