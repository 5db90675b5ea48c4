// Package manifest handles parsing and validation of extension manifests
// (extension.yaml). It checks manifests against an embedded JSON Schema and
// decides whether an extension is compatible with the running host version.
package manifest
