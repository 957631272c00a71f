package compiler

// Body is the opaque per-component code generator supplied by the
// declaration collaborator. The session only knows how to ask it for its
// declared base and for its two code blocks.
type Body interface {
	// Base returns the declared base reference, not yet resolved. An empty
	// base denotes the universal root type.
	Base() string

	// Pregenerate runs once per registered component before discovery
	// starts. It may resolve (and thereby mark) other components.
	Pregenerate(scope Scope) error

	// Generate emits the component's main code.
	Generate(scope Scope) (string, error)

	// GeneratePrototype emits the component's prototype and metadata code.
	GeneratePrototype(scope Scope) (string, error)
}

// PropertyAssigner is implemented by bodies whose declared properties can be
// overridden at generation time. The context component must implement it to
// receive the build identifier.
type PropertyAssigner interface {
	// AssignProperty replaces the value of a declared property and reports
	// whether the property exists.
	AssignProperty(name, value string) bool
}

// Scope is the view of the session handed to a [Body] while it generates.
// References are resolved relative to the component's own package.
type Scope interface {
	// Name returns the fully qualified name of the component.
	Name() string
	// Package returns the package of the component.
	Package() string
	// Namespace returns the namespace object generated code is installed in.
	Namespace() string
	// Find resolves ref and marks the result reachable.
	Find(ref string) (string, error)
	// Lookup resolves ref without marking.
	Lookup(ref string) (string, error)
	// ReserveID returns a program-wide unique identifier derived from id.
	ReserveID(id string) string
}

// Component is a registered component.
type Component struct {
	Body        Body
	Name        string // fully qualified
	Package     string
	Short       string
	Declaration bool
}

type scope struct {
	s *Session
	c *Component
}

func (sc scope) Name() string      { return sc.c.Name }
func (sc scope) Package() string   { return sc.c.Package }
func (sc scope) Namespace() string { return sc.s.ns }

func (sc scope) Find(ref string) (string, error) {
	return sc.s.Find(sc.c.Package, ref)
}

func (sc scope) Lookup(ref string) (string, error) {
	return sc.s.Lookup(sc.c.Package, ref)
}

func (sc scope) ReserveID(id string) string { return sc.s.ReserveID(id) }
