// Package render serialises a bound tree back to HTML. The live tree is
// never modified: exports that strip directives or sanitise work on a copy.
package render
