package compiler

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
)

// buildIDProperty is the context component property receiving the build
// identifier.
const buildIDProperty = "buildIdentifier"

// usingDirective matches "@using { name }" in foreign import text.
var usingDirective = regexp.MustCompile(`@using\s*{(.*?)}`)

// Generated is the code of one emitted component.
type Generated struct {
	Type      string
	Code      string
	Prototype string
}

// ScanUsing marks every component named by an "@using {name}" directive in
// the registered imports. Names are resolved from the root package, so
// they should be fully qualified.
func (s *Session) ScanUsing() error {
	for _, imp := range s.imports {
		for _, m := range usingDirective.FindAllStringSubmatch(imp.Code, -1) {
			ref := strings.TrimSpace(m[1])
			if ref == "" {
				continue
			}

			if _, err := s.Find("", ref); err != nil {
				return WrapError(err).With(slog.String("import", imp.Name))
			}
		}
	}

	return nil
}

// GenerateComponents discovers every component reachable from the context
// component, generates each exactly once, and returns them ordered so that
// every base precedes the components deriving from it.
func (s *Session) GenerateComponents(ctx context.Context) ([]Generated, error) {
	entry, err := s.contextComponent()
	if err != nil {
		return nil, err
	}

	s.injectBuildID(entry)

	for _, name := range s.registered {
		c := s.components[name]

		if err := c.Body.Pregenerate(scope{s: s, c: c}); err != nil {
			return nil, ErrGenerate.With(slog.String("component", name)).Wrap(err)
		}
	}

	code := make(map[string]Generated)
	bases := make(map[string]string)
	order := make([]string, 0, len(s.components)) // discovery order of bases

	// Every run starts over from the entry point and the components
	// already known to be reachable, in registration order.
	s.pending = nil

	queue := []string{entry}

	for _, name := range s.registered {
		if _, ok := s.reachable[name]; ok && name != entry {
			queue = append(queue, name)
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, name := range s.drain() {
			if _, done := code[name]; !done {
				queue = append(queue, name)
			}
		}

		if len(queue) == 0 {
			break
		}

		name := queue[0]
		queue = queue[1:]

		c, ok := s.components[name]
		if !ok {
			return nil, ErrInternal.With(slog.String("component", name))
		}

		base, err := s.Find(c.Package, c.Body.Base())
		if err != nil {
			return nil, WrapError(err).With(slog.String("component", name))
		}

		if prev, seen := bases[name]; !seen {
			order = append(order, name)
			bases[name] = base
		} else if prev != base {
			return nil, ErrInternal.With(
				slog.String("component", name),
				slog.String("base", prev),
				slog.String("rebased", base),
			)
		}

		if _, done := code[name]; done {
			continue
		}

		g, err := s.generate(c)
		if err != nil {
			return nil, err
		}

		code[name] = g

		s.log.DebugContext(ctx, "component generated",
			slog.String("component", name),
			slog.String("base", base),
		)
	}

	sorted, err := s.sortByBase(order, bases)
	if err != nil {
		return nil, err
	}

	out := make([]Generated, 0, len(sorted))
	for _, name := range sorted {
		out = append(out, code[name])
	}

	return out, nil
}

// Order returns the emission order GenerateComponents would produce.
func (s *Session) Order(ctx context.Context) ([]string, error) {
	gen, err := s.GenerateComponents(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(gen))
	for i, g := range gen {
		out[i] = g.Type
	}

	return out, nil
}

// ContextType resolves the context component without marking it.
func (s *Session) ContextType() (string, error) {
	pkg, short := SplitName(s.cfg.context)

	return s.Lookup(pkg, short)
}

func (s *Session) contextComponent() (string, error) {
	pkg, short := SplitName(s.cfg.context)

	return s.Find(pkg, short)
}

func (s *Session) injectBuildID(name string) {
	c, ok := s.components[name]
	if !ok {
		return
	}

	pa, ok := c.Body.(PropertyAssigner)
	if !ok || !pa.AssignProperty(buildIDProperty, QuoteString(s.buildID)) {
		s.log.Debug("context has no build identifier property",
			slog.String("component", name))
	}
}

func (s *Session) generate(c *Component) (Generated, error) {
	s.used[c.Package] = struct{}{}

	sc := scope{s: s, c: c}

	code, err := c.Body.Generate(sc)
	if err != nil {
		return Generated{}, ErrGenerate.With(slog.String("component", c.Name)).Wrap(err)
	}

	proto, err := c.Body.GeneratePrototype(sc)
	if err != nil {
		return Generated{}, ErrGenerate.With(slog.String("component", c.Name)).Wrap(err)
	}

	return Generated{Type: c.Name, Code: code, Prototype: proto}, nil
}

// sortByBase orders names so that each follows its base, iteratively
// walking base chains. The root type is never emitted.
func (s *Session) sortByBase(names []string, bases map[string]string) ([]string, error) {
	visited := map[string]bool{s.cfg.rootType: true}
	out := make([]string, 0, len(names))

	for _, name := range names {
		var chain []string

		onChain := make(map[string]bool)

		for cur := name; !visited[cur]; {
			if onChain[cur] {
				return nil, ErrInheritanceCycle.With(
					slog.String("component", cur),
					slog.Any("chain", chain),
				)
			}

			onChain[cur] = true
			chain = append(chain, cur)

			base, ok := bases[cur]
			if !ok {
				return nil, ErrInternal.With(slog.String("component", cur)).
					Wrap(errors.New("base never resolved"))
			}

			cur = base
		}

		for i := len(chain) - 1; i >= 0; i-- {
			visited[chain[i]] = true
			out = append(out, chain[i])
		}
	}

	return out, nil
}
