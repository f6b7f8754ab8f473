// Package loaders maps document locations to typed page loaders.
//
// Each subpackage handles one document type (pdf, slides, word, web,
// text). The Registry resolves a location string to the effective type
// and dispatches to the matching loader.
package loaders
