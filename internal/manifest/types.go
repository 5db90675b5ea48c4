package manifest

// FileName is the manifest file looked up in every extension folder.
const FileName = "extension.yaml"

// Manifest describes one extension as declared by its author.
type Manifest struct {
	Name        string                 `yaml:"name" json:"name"`
	Type        string                 `yaml:"type" json:"type"`
	Version     string                 `yaml:"version" json:"version"`
	Description string                 `yaml:"description,omitempty" json:"description,omitempty"`
	Author      string                 `yaml:"author,omitempty" json:"author,omitempty"`
	Tags        []string               `yaml:"tags,omitempty" json:"tags,omitempty"`
	Host        string                 `yaml:"host,omitempty" json:"host,omitempty"`
	Entrypoint  string                 `yaml:"entrypoint,omitempty" json:"entrypoint,omitempty"`
	Options     map[string]interface{} `yaml:"options,omitempty" json:"options,omitempty"`
	Entries     []BundleEntry          `yaml:"entries,omitempty" json:"entries,omitempty"`
}

// BundleEntry is one extension shipped inside a bundle extension.
type BundleEntry struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}
