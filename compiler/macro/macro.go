// Package macro expands the COPY_ARGS call-forwarding macro into explicit
// argument-copy code.
//
// An invocation has the form
//
//	COPY_ARGS<suffix>(name, skip[, prefix])
//
// where <suffix> is any run of word characters. It declares the array name
// holding the caller's arguments from index skip on. With a prefix, the
// prefix becomes element 0 and the copied arguments follow it.
package macro

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

const keyword = "COPY_ARGS"

// ErrMalformed is returned for an invocation whose skip count is not an
// integer.
var ErrMalformed = errors.New("malformed " + keyword + " invocation")

//go:embed copy_args.js
var copyArgsText string

//nolint:gochecknoglobals
var copyArgs = template.Must(
	template.New("copy_args.js").Parse(strings.TrimSuffix(copyArgsText, "\n")),
)

// Invocation is the template context of one expanded macro.
type Invocation struct {
	Name   string
	Prefix string
	Index  int
	Extra  int
}

// Expand replaces every COPY_ARGS invocation in text. Text without an
// invocation is returned unchanged.
func Expand(text string) (string, error) {
	if !strings.Contains(text, keyword) {
		return text, nil
	}

	var b strings.Builder

	b.Grow(len(text))

	rest := text

	for {
		i := strings.Index(rest, keyword)
		if i < 0 {
			b.WriteString(rest)

			break
		}

		inv, n, ok, err := Parse(rest[i:])
		if err != nil {
			return "", err
		}

		if !ok {
			b.WriteString(rest[:i+len(keyword)])
			rest = rest[i+len(keyword):]

			continue
		}

		b.WriteString(rest[:i])

		if err := copyArgs.Execute(&b, inv); err != nil {
			return "", fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		rest = rest[i+n:]
	}

	return b.String(), nil
}

// Parse parses the invocation at the start of s, which must begin with the
// macro keyword. It returns the invocation and its length in bytes. ok is
// false if s does not hold a complete invocation on a single line.
func Parse(s string) (inv Invocation, n int, ok bool, err error) {
	if !strings.HasPrefix(s, keyword) {
		return Invocation{}, 0, false, nil
	}

	p := len(keyword)
	for p < len(s) && isWord(s[p]) {
		p++
	}

	if p >= len(s) || s[p] != '(' {
		return Invocation{}, 0, false, nil
	}

	p++

	line := s[p:]
	if nl := strings.IndexByte(line, '\n'); nl >= 0 {
		line = line[:nl]
	}

	comma := strings.IndexByte(line, ',')
	if comma < 0 {
		return Invocation{}, 0, false, nil
	}

	name, args := line[:comma], line[comma+1:]
	p += comma + 1

	end := strings.IndexAny(args, ",)")
	if end < 0 {
		return Invocation{}, 0, false, nil
	}

	skip, prefix := args[:end], ""

	switch {
	case args[end] == ')':
		p += end + 1

	default:
		tail := args[end+1:]

		closing := strings.IndexByte(tail, ')')
		if closing < 0 {
			return Invocation{}, 0, false, nil
		}

		prefix = tail[:closing]
		p += end + 1 + closing + 1
	}

	index, err := strconv.Atoi(strings.TrimSpace(skip))
	if err != nil {
		return Invocation{}, 0, false, fmt.Errorf("%w: %q", ErrMalformed, s[:p])
	}

	return Invocation{
		Name:   strings.TrimSpace(name),
		Prefix: strings.TrimSpace(prefix),
		Index:  index,
		Extra:  1 - index,
	}, p, true, nil
}

func isWord(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
