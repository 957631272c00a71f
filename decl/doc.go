// Package decl is the reference declaration front end of qjsc.
//
// A project directory holds three kinds of files:
//
//   - "*.qjs.yaml" component declarations, one package per file;
//   - "*.js" foreign imports, named by their slash-separated path relative
//     to the project directory (e.g. "core/core.js");
//   - "*.l10n.yaml" translation sources.
//
// A declaration file looks like:
//
//	package: core
//	components:
//	  - name: Rectangle
//	    base: Item
//	    properties:
//	      color: "'black'"
//	    children:
//	      - id: border
//	        type: Border
//
// Property values are target-language expressions and are emitted
// verbatim. A component with "declaration: false" is the application root.
//
// [LoadTree] reads project directories, [Register] hands the result to a
// [compiler.Session], and [BuildID] derives a reproducible build identifier
// from the file contents.
package decl
