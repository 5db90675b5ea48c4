// Package extension manages the extensions.yaml settings file kept at the
// root of the extensions directory. The file records which extensions are
// disabled and which additional source directories are searched.
package extension
