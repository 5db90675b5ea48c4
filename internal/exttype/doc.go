// Package exttype defines the closed set of extension types recognized by the
// host application and resolves singular or plural type tokens against it.
package exttype
