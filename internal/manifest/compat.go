package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// HostCompatible reports whether hostVersion satisfies the manifest's host
// range. An empty range or an empty host version is always compatible.
func (m *Manifest) HostCompatible(hostVersion string) (bool, error) {
	if m.Host == "" || hostVersion == "" {
		return true, nil
	}
	c, err := semver.NewConstraint(m.Host)
	if err != nil {
		return false, fmt.Errorf("parsing host range %q of %s: %w", m.Host, m.Name, err)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(hostVersion, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing host version %q: %w", hostVersion, err)
	}
	return c.Check(v), nil
}
