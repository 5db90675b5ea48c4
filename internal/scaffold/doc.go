// Package scaffold generates new extensions from embedded templates. It powers
// the "create" command, producing a manifest and an entry source file laid out
// in the type folder the registry discovers.
package scaffold
