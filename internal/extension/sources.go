package extension

import (
	"path/filepath"

	"github.com/agentx-labs/extensiond/internal/registry"
)

// LocalSource is the name of the extensions root itself.
const LocalSource = "local"

// BuildSources returns the directories searched for extensions. The
// extensions root always comes first, followed by the declared sources in
// file order. Relative source paths are resolved against root.
func BuildSources(s *Settings, root string) []registry.Source {
	sources := []registry.Source{{Name: LocalSource, BasePath: root}}

	for _, src := range s.Sources {
		if src.Name == "" || src.Name == LocalSource {
			continue
		}
		basePath := src.Path
		if basePath == "" {
			basePath = filepath.Join(root, src.Name)
		}
		if !filepath.IsAbs(basePath) {
			basePath = filepath.Join(root, basePath)
		}
		sources = append(sources, registry.Source{Name: src.Name, BasePath: basePath})
	}

	return sources
}
