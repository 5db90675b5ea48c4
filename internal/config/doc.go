// Package config manages service settings stored at ~/.extensiond/config.yaml
// and overridable through EXTENSIOND_* environment variables. Settings are
// resolved once at startup into an immutable Settings value.
package config
