// Package server exposes the extension registry and the extension bundles
// over HTTP.
//
//	GET /extensions/                 all extensions
//	GET /extensions/{type}           extensions of one type, singular or plural
//	GET /extensions/sources/{chunk}  entry bundle (index.js) or a chunk
//
// Unknown types, unknown chunks and bundles that are not built yet are all
// reported the same way as a route that does not exist.
package server
