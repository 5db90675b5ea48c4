// Package bundle holds the compiled client-side bundles of the installed
// extensions: the entry bundle that bootstraps them and the lazily loaded
// chunks it references. Builds are produced elsewhere and published here as
// a whole; readers always see either the previous build or the next one.
package bundle
