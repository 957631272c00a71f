// Package compiler assembles declaratively defined components into a single
// JavaScript program.
//
// A [Session] collects component bodies and foreign imports registered by a
// declaration front end, then:
//
//   - resolves component references across the package namespace
//     ([Session.Find], [Session.Lookup]),
//   - discovers every component reachable from the context component and
//     generates each exactly once ([Session.GenerateComponents]),
//   - orders the generated code so bases precede derived components,
//   - declares every namespace object once and wraps the foreign imports
//     ([Session.Prologue], [Session.ImportsText]),
//   - hands the result to a [Renderer] and expands the COPY_ARGS macro
//     ([Session.Generate]).
//
// Every failure aborts the run and matches one of the package's sentinel
// errors. A translation without a target language is the only condition
// that is logged and skipped.
package compiler
