package decl

import (
	"fmt"
	"strings"

	"github.com/ardnew/qjsc/compiler"
)

// Body generates the code of one declared component. It implements
// [compiler.Body] and [compiler.PropertyAssigner].
type Body struct {
	decl     Component
	props    []Property
	uses     []string // resolved by Pregenerate
	children []child  // resolved by Generate
}

type child struct {
	props []Property
	id    string // as declared, may be empty
	local string // reserved variable name
	typ   string // fully qualified
}

// NewBody returns the body of a declared component.
func NewBody(c Component) (*Body, error) {
	props, err := sortedProperties(c.Properties)
	if err != nil {
		return nil, fmt.Errorf("component %s: %w", c.Name, err)
	}

	return &Body{decl: c, props: props}, nil
}

// Base implements [compiler.Body].
func (b *Body) Base() string { return b.decl.Base }

// Properties returns the component's properties sorted by name.
func (b *Body) Properties() []Property { return b.props }

// AssignProperty implements [compiler.PropertyAssigner].
func (b *Body) AssignProperty(name, value string) bool {
	for i := range b.props {
		if b.props[i].Name == name {
			b.props[i].Value = value

			return true
		}
	}

	return false
}

// Pregenerate resolves the components named in "uses", marking them
// reachable.
func (b *Body) Pregenerate(scope compiler.Scope) error {
	b.uses = b.uses[:0]

	for _, ref := range b.decl.Uses {
		name, err := scope.Find(ref)
		if err != nil {
			return err
		}

		b.uses = append(b.uses, name)
	}

	return nil
}

// Generate emits the constructor. Child types are resolved here, so
// instantiating a component makes its children reachable.
func (b *Body) Generate(scope compiler.Scope) (string, error) {
	base, err := scope.Lookup(b.decl.Base)
	if err != nil {
		return "", err
	}

	b.children = b.children[:0]

	for _, c := range b.decl.Children {
		typ, err := scope.Find(c.Type)
		if err != nil {
			return "", err
		}

		props, err := sortedProperties(c.Properties)
		if err != nil {
			return "", fmt.Errorf("child %s of %s: %w", c.Type, scope.Name(), err)
		}

		id := c.ID
		if id == "" {
			_, short := compiler.SplitName(typ)
			id = strings.ToLower(short[:1]) + short[1:]
		}

		b.children = append(b.children, child{
			props: props,
			id:    c.ID,
			local: scope.ReserveID(id),
			typ:   typ,
		})
	}

	_, short := compiler.SplitName(scope.Name())

	var w strings.Builder

	fmt.Fprintf(&w, "\tvar %sBaseComponent = _globals.%s\n", short, base)
	fmt.Fprintf(&w, "\tvar %sBasePrototype = %sBaseComponent.prototype\n\n", short, short)
	fmt.Fprintf(&w, "/**\n * @constructor\n * @extends {_globals.%s}\n */\n", base)
	fmt.Fprintf(&w, "\tvar %sComponent = _globals.%s = function(parent, row) {\n", short, scope.Name())
	fmt.Fprintf(&w, "\t\t%sBaseComponent.apply(this, arguments)\n", short)
	w.WriteString("\t}\n")

	return w.String(), nil
}

// GeneratePrototype emits the prototype: identity, properties, used
// components, and the creation of children.
func (b *Body) GeneratePrototype(scope compiler.Scope) (string, error) {
	_, short := compiler.SplitName(scope.Name())
	proto := short + "Prototype"

	var w strings.Builder

	fmt.Fprintf(&w, "\tvar %s = %sComponent.prototype = Object.create(%sBasePrototype)\n\n",
		proto, short, short)
	fmt.Fprintf(&w, "\t%s.constructor = %sComponent\n\n", proto, short)
	fmt.Fprintf(&w, "\t%s.componentName = '%s'\n", proto, scope.Name())

	for _, p := range b.props {
		fmt.Fprintf(&w, "\t%s.%s = %s\n", proto, p.Name, p.Value)
	}

	if len(b.uses) > 0 {
		fmt.Fprintf(&w, "\t%s.$uses = ['%s']\n", proto, strings.Join(b.uses, "', '"))
	}

	if len(b.children) == 0 {
		return w.String(), nil
	}

	fmt.Fprintf(&w, "\n\t%s.$c = function($c) {\n", proto)
	w.WriteString("\t\tvar $this = this;\n")
	fmt.Fprintf(&w, "\t\t%sBasePrototype.$c.call(this, $c)\n", short)

	for _, c := range b.children {
		fmt.Fprintf(&w, "\t\tvar %s = new %s.%s($this)\n", c.local, scope.Namespace(), c.typ)

		if c.id != "" {
			fmt.Fprintf(&w, "\t\t$this._setId(%s, '%s')\n", c.local, c.id)
		}

		for _, p := range c.props {
			fmt.Fprintf(&w, "\t\t%s.%s = %s\n", c.local, p.Name, p.Value)
		}
	}

	w.WriteString("\t}\n")

	return w.String(), nil
}
