package compiler

import (
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"
)

// importExt is the recognized file-type extension stripped from foreign
// import names before they become namespace paths.
const importExt = ".js"

// reserved holds the target-language words that cannot name a namespace
// segment or a manifest variable.
//
//nolint:gochecknoglobals
var reserved = map[string]struct{}{
	"break": {}, "case": {}, "catch": {}, "class": {}, "const": {},
	"continue": {}, "debugger": {}, "default": {}, "delete": {}, "do": {},
	"else": {}, "enum": {}, "export": {}, "extends": {}, "false": {},
	"finally": {}, "for": {}, "function": {}, "if": {}, "implements": {},
	"import": {}, "in": {}, "instanceof": {}, "interface": {}, "let": {},
	"new": {}, "null": {}, "package": {}, "private": {}, "protected": {},
	"public": {}, "return": {}, "static": {}, "super": {}, "switch": {},
	"this": {}, "throw": {}, "true": {}, "try": {}, "typeof": {}, "var": {},
	"void": {}, "while": {}, "with": {}, "yield": {},
}

// SplitName splits a possibly qualified name at its last '.' into the
// package (or namespace hint) and the short name. An unqualified name
// yields an empty package.
func SplitName(name string) (pkg, short string) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return "", name
	}

	return name[:i], name[i+1:]
}

// EscapeID makes id safe for use as a target-language identifier by
// suffixing reserved words with '$'.
func EscapeID(id string) string {
	if _, ok := reserved[id]; ok {
		return id + "$"
	}

	return id
}

// EscapePackage applies [EscapeID] to every dotted segment of pkg.
func EscapePackage(pkg string) string {
	if pkg == "" {
		return ""
	}

	seg := strings.Split(pkg, ".")
	for i := range seg {
		seg[i] = EscapeID(seg[i])
	}

	return strings.Join(seg, ".")
}

// ImportPath converts a foreign import name into its escaped dotted
// namespace path: the recognized extension is stripped and path separators
// become dots. For example "core/core.js" becomes "core.core".
func ImportPath(name string) string {
	name = strings.TrimSuffix(name, importExt)

	return EscapePackage(strings.ReplaceAll(name, "/", "."))
}

// ImportPackage returns the namespace that must exist before the import's
// own slot can be assigned, i.e. the parent of [ImportPath].
func ImportPackage(name string) string {
	pkg, _ := SplitName(ImportPath(name))

	return pkg
}

// QuoteString returns s as a double-quoted target-language string literal.
// Invalid UTF-8 is replaced with U+FFFD.
func QuoteString(s string) string {
	var b strings.Builder

	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // strings always encode

	return strings.TrimSuffix(b.String(), "\n")
}

// uiName returns the generated type name of an instantiated root component.
func uiName(short string) string {
	r, n := utf8.DecodeRuneInString(short)
	if r == utf8.RuneError {
		return "Ui" + short
	}

	return "Ui" + string(unicode.ToUpper(r)) + short[n:]
}
