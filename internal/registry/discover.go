package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/extensiond/internal/exttype"
	"github.com/agentx-labs/extensiond/internal/manifest"
	"github.com/elliotchance/orderedmap/v2"
)

// DiscoverOptions controls how manifests become descriptors.
type DiscoverOptions struct {
	// HostVersion is the running host application version. Extensions whose
	// host range excludes it are skipped. Empty disables the check.
	HostVersion string
	// IsEnabled reports the enabled state of an extension by name.
	// Nil means every extension is enabled.
	IsEnabled func(name string) bool
}

// Discover walks all sources and returns the descriptors of every valid,
// host-compatible extension in discovery order, together with warnings for
// everything that was skipped. Extensions found in earlier sources take
// priority; later duplicates are skipped.
//
// Within a source, type folders (<plural>/<name>/extension.yaml) are walked
// in type declaration order, followed by package folders
// (<name>/extension.yaml) whose manifest declares the type.
func Discover(sources []Source, opts DiscoverOptions) ([]Descriptor, []string) {
	found := orderedmap.NewOrderedMap[string, Descriptor]()
	var warnings []string

	for _, src := range sources {
		if _, err := os.Stat(src.BasePath); err != nil {
			warnings = append(warnings, fmt.Sprintf("source %s: %v", src.Name, err))
			continue
		}
		for _, c := range walkSource(src) {
			d, err := describe(c, src, opts)
			if err != nil {
				warnings = append(warnings, err.Error())
				continue
			}
			if _, dup := found.Get(d.ID); dup {
				warnings = append(warnings, fmt.Sprintf("%s: extension %q already provided by an earlier source", c.path, d.ID))
				continue
			}
			found.Set(d.ID, d)
		}
	}

	result := make([]Descriptor, 0, found.Len())
	for el := found.Front(); el != nil; el = el.Next() {
		result = append(result, el.Value)
	}
	return result, warnings
}

// candidate is a manifest found on disk. folderType is set for manifests
// inside a type folder.
type candidate struct {
	path       string
	folderType exttype.Type
}

func walkSource(src Source) []candidate {
	var out []candidate
	typeDirs := make(map[string]bool)

	for _, t := range exttype.All() {
		typeDirs[t.Plural()] = true
		for _, dir := range subdirs(filepath.Join(src.BasePath, t.Plural())) {
			p := filepath.Join(dir, manifest.FileName)
			if fileExists(p) {
				out = append(out, candidate{path: p, folderType: t})
			}
		}
	}

	for _, dir := range subdirs(src.BasePath) {
		if typeDirs[filepath.Base(dir)] {
			continue
		}
		p := filepath.Join(dir, manifest.FileName)
		if fileExists(p) {
			out = append(out, candidate{path: p})
		}
	}
	return out
}

// describe validates a manifest and converts it into a descriptor.
func describe(c candidate, src Source, opts DiscoverOptions) (Descriptor, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%s: %w", c.path, err)
	}

	res, err := manifest.Validate(data)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%s: %w", c.path, err)
	}
	if !res.Valid {
		return Descriptor{}, fmt.Errorf("%s: invalid manifest: %s", c.path, res.Issues[0])
	}

	m, err := manifest.ParseBytes(data, c.path)
	if err != nil {
		return Descriptor{}, err
	}

	typ, ok := exttype.Parse(m.Type)
	if !ok {
		return Descriptor{}, fmt.Errorf("%s: unknown extension type %q", c.path, m.Type)
	}
	if c.folderType != "" && typ != c.folderType {
		return Descriptor{}, fmt.Errorf("%s: declares type %q inside the %s folder", c.path, typ, c.folderType.Plural())
	}

	compatible, err := m.HostCompatible(opts.HostVersion)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%s: %w", c.path, err)
	}
	if !compatible {
		return Descriptor{}, fmt.Errorf("%s: %s requires host %s, running %s", c.path, m.Name, m.Host, opts.HostVersion)
	}

	enabled := true
	if opts.IsEnabled != nil {
		enabled = opts.IsEnabled(m.Name)
	}

	d := Descriptor{
		ID:          m.Name,
		Name:        m.Name,
		Type:        typ,
		Enabled:     enabled,
		Version:     m.Version,
		Description: m.Description,
		Host:        m.Host,
		Source:      src.Name,
		Meta:        m.Options,
	}
	for _, e := range m.Entries {
		d.Entries = append(d.Entries, Entry{Name: e.Name, Type: exttype.Type(e.Type)})
	}
	return d, nil
}

// subdirs returns the immediate subdirectories of dir in lexical order.
// Missing or unreadable directories yield nothing.
func subdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
