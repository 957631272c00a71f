// Package explore implements an interactive component resolver.
//
// Each line typed is resolved like a reference written in the current
// package and the result is printed: the fully qualified component and its
// base chain, or the ambiguity or "did you mean" error the compiler would
// report. Lines starting with ':' are commands (":help" lists them).
// Completions of registered component and package names are fuzzy matched
// as you type.
package explore
