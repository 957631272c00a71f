package compiler

import (
	"errors"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/ardnew/qjsc/l10n"
	"github.com/ardnew/qjsc/log"
)

// reservedIDs are never handed out by [Session.ReserveID].
//
//nolint:gochecknoglobals
var reservedIDs = []string{"context", "model"}

// Import is a registered foreign code module.
type Import struct {
	Name string
	Code string
}

// Session holds the state of one compilation run. Sessions are independent
// of each other and are not safe for concurrent use.
type Session struct {
	log log.Logger
	cfg config

	ns      string
	buildID string

	components map[string]*Component
	registered []string // registration order
	packages   map[string]map[string]struct{}

	reachable map[string]struct{}
	used      map[string]struct{} // packages
	pending   []string            // marked since the last drain

	imports     []Import
	importIndex map[string]int

	startup []string
	l10n    l10n.Table
	ids     map[string]struct{}
}

// New returns an empty session generating code into the namespace object ns
// and stamping the build identifier buildID into the context component.
func New(ns, buildID string, opts ...Option) *Session {
	cfg := makeConfig(opts...)

	s := &Session{
		log:         cfg.logger.With(slog.String("ns", ns)),
		cfg:         cfg,
		ns:          ns,
		buildID:     buildID,
		components:  make(map[string]*Component),
		packages:    make(map[string]map[string]struct{}),
		reachable:   make(map[string]struct{}),
		used:        make(map[string]struct{}),
		importIndex: make(map[string]int),
		l10n:        make(l10n.Table),
		ids:         make(map[string]struct{}),
	}

	for _, id := range reservedIDs {
		s.ids[id] = struct{}{}
	}

	return s
}

// Namespace returns the namespace object generated code is installed in.
func (s *Session) Namespace() string { return s.ns }

// BuildID returns the build identifier.
func (s *Session) BuildID() string { return s.buildID }

// AddComponent registers a component under a fully or partially qualified
// name. A non-declaration is the application's root: it is renamed to
// "<package>.Ui<Name>", marked reachable, and started by the startup script.
func (s *Session) AddComponent(name string, body Body, declaration bool) error {
	if body == nil {
		return ErrInternal.With(slog.String("component", name)).
			Wrap(errors.New("nil component body"))
	}

	if _, ok := s.components[name]; ok {
		return ErrDuplicateComponent.With(slog.String("component", name))
	}

	pkg, short := SplitName(name)
	pkg = EscapePackage(pkg)

	if !declaration {
		short = uiName(short)
	}

	fq := qualify(pkg, short)

	if _, ok := s.components[fq]; ok {
		return ErrDuplicateComponent.With(slog.String("component", fq))
	}

	c := &Component{
		Body:        body,
		Name:        fq,
		Package:     pkg,
		Short:       short,
		Declaration: declaration,
	}

	s.components[fq] = c
	s.registered = append(s.registered, fq)

	names, ok := s.packages[pkg]
	if !ok {
		names = make(map[string]struct{})
		s.packages[pkg] = names
	}

	names[short] = struct{}{}

	if !declaration {
		s.mark(fq, pkg)
		s.startup = append(s.startup,
			"\tcontext.start(new "+s.ns+"."+fq+"(context))",
			"\tcontext.run()",
		)
	}

	s.log.Trace("component registered",
		slog.String("component", fq),
		slog.Bool("declaration", declaration),
	)

	return nil
}

// AddImport registers a foreign code module. Names must be unique; imports
// are emitted in registration order.
func (s *Session) AddImport(name, code string) error {
	if _, ok := s.importIndex[name]; ok {
		return ErrDuplicateImport.With(slog.String("import", name))
	}

	s.importIndex[name] = len(s.imports)
	s.imports = append(s.imports, Import{Name: name, Code: code})

	s.log.Trace("import registered", slog.String("import", name))

	return nil
}

// AddTranslation merges the superseded messages of src into the
// localization table. A source without a target language is skipped with a
// warning.
func (s *Session) AddTranslation(src l10n.Source) error {
	err := s.l10n.Merge(src)
	if errors.Is(err, l10n.ErrNoLanguage) {
		s.log.Warn("translation ignored", slog.Any("error", err))

		return nil
	}

	return err
}

// ReserveID returns id, or id suffixed with "$<n>" if id was already
// reserved, and reserves the result.
func (s *Session) ReserveID(id string) string {
	id = EscapeID(id)

	out := id
	for n := 1; ; n++ {
		if _, ok := s.ids[out]; !ok {
			break
		}

		out = id + "$" + strconv.Itoa(n)
	}

	s.ids[out] = struct{}{}

	return out
}

// Component returns the component registered under the fully qualified
// name.
func (s *Session) Component(name string) (*Component, bool) {
	c, ok := s.components[name]

	return c, ok
}

// Components returns the fully qualified names of all registered
// components, sorted.
func (s *Session) Components() []string {
	return slices.Sorted(maps.Keys(s.components))
}

// Packages returns the names of all packages holding components, sorted.
func (s *Session) Packages() []string {
	return slices.Sorted(maps.Keys(s.packages))
}

// Imports returns the registered imports in registration order.
func (s *Session) Imports() []Import { return slices.Clone(s.imports) }

// Reachable returns the fully qualified names of the components marked
// reachable so far, sorted.
func (s *Session) Reachable() []string {
	return slices.Sorted(maps.Keys(s.reachable))
}

// Startup returns the startup script lines.
func (s *Session) Startup() []string { return slices.Clone(s.startup) }

// L10n returns the localization table.
func (s *Session) L10n() l10n.Table { return s.l10n }

// mark adds a component and its package to the reachable set. Components
// not seen before are queued for the next drain.
func (s *Session) mark(name, pkg string) {
	s.used[pkg] = struct{}{}

	if _, ok := s.reachable[name]; ok {
		return
	}

	s.reachable[name] = struct{}{}
	s.pending = append(s.pending, name)

	s.log.Trace("component marked", slog.String("component", name))
}

// drain returns and clears the components marked since the last call.
func (s *Session) drain() []string {
	p := s.pending
	s.pending = nil

	return p
}

func qualify(pkg, short string) string {
	if pkg == "" {
		return short
	}

	return pkg + "." + short
}
