package compiler

import (
	"testing"

	"github.com/ardnew/qjsc/log"
)

// body is a scripted component body.
type body struct {
	props map[string]string
	fail  error
	base  string
	uses  []string // resolved by Pregenerate
	refs  []string // resolved by Generate
	calls int
}

func (b *body) Base() string { return b.base }

func (b *body) Pregenerate(s Scope) error {
	for _, ref := range b.uses {
		if _, err := s.Find(ref); err != nil {
			return err
		}
	}

	return nil
}

func (b *body) Generate(s Scope) (string, error) {
	b.calls++

	for _, ref := range b.refs {
		if _, err := s.Find(ref); err != nil {
			return "", err
		}
	}

	if b.fail != nil {
		return "", b.fail
	}

	return "code " + s.Name(), nil
}

func (b *body) GeneratePrototype(s Scope) (string, error) {
	return "proto " + s.Name(), nil
}

func (b *body) AssignProperty(name, value string) bool {
	if _, ok := b.props[name]; !ok {
		return false
	}

	b.props[name] = value

	return true
}

func newSession(t *testing.T, opts ...Option) *Session {
	t.Helper()

	return New("qml", "build-1", append([]Option{WithLogger(log.Discard())}, opts...)...)
}

// register adds declarations given as name -> base.
func register(t *testing.T, s *Session, decls ...[2]string) map[string]*body {
	t.Helper()

	bodies := make(map[string]*body, len(decls))

	for _, d := range decls {
		b := &body{base: d[1]}
		if err := s.AddComponent(d[0], b, true); err != nil {
			t.Fatalf("AddComponent(%q): %v", d[0], err)
		}

		bodies[d[0]] = b
	}

	return bodies
}
