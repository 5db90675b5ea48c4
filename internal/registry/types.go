package registry

import (
	"time"

	"github.com/agentx-labs/extensiond/internal/exttype"
)

// Source is a directory searched for extensions.
type Source struct {
	Name     string // e.g. "local", "vendor"
	BasePath string // absolute path to the source root
}

// Descriptor describes one installed extension as exposed to clients.
// Descriptors are never modified after a snapshot is built; callers must
// treat Meta and Entries as read-only.
type Descriptor struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Type        exttype.Type           `json:"type"`
	Enabled     bool                   `json:"enabled"`
	Version     string                 `json:"version,omitempty"`
	Description string                 `json:"description,omitempty"`
	Host        string                 `json:"host,omitempty"`
	Source      string                 `json:"source"`
	Entries     []Entry                `json:"entries,omitempty"`
	Meta        map[string]interface{} `json:"meta,omitempty"`
}

// Entry is an extension shipped inside a bundle extension.
type Entry struct {
	Name string       `json:"name"`
	Type exttype.Type `json:"type"`
}

// Snapshot is an immutable, ordered view of all installed extensions.
type Snapshot struct {
	Descriptors []Descriptor
	Generation  uint64
	BuiltAt     time.Time
}
