package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/agentx-labs/extensiond/internal/exttype"
	"github.com/agentx-labs/extensiond/internal/manifest"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ErrBundle is returned for bundle extensions, which are assembled from
// existing extensions rather than generated.
var ErrBundle = errors.New("bundle extensions cannot be scaffolded")

// Data holds all template variables available to scaffold templates.
type Data struct {
	Name        string       // e.g. "sales-chart"
	Type        exttype.Type // e.g. panel
	Title       string       // Derived: "Sales Chart"
	Description string
	Version     string // Semver, e.g. "0.1.0"
	Host        string // Host version range, may be empty
	Server      bool   // Derived: true for hooks, endpoints and operations
	Year        int
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
}

// NewData creates Data with derived fields populated.
func NewData(name string, typ exttype.Type) *Data {
	d := &Data{
		Name:    name,
		Type:    typ,
		Title:   title(name),
		Version: "0.1.0",
		Year:    time.Now().Year(),
	}
	d.Description = fmt.Sprintf("%s %s", d.Title, typ)
	switch typ {
	case exttype.Hook, exttype.Endpoint, exttype.Operation:
		d.Server = true
	}
	return d
}

// Dir returns the folder an extension is created in below the extensions root.
func Dir(root string, data *Data) string {
	return filepath.Join(root, data.Type.Plural(), data.Name)
}

// Generate creates a new extension in its type folder below root. The
// rendered manifest is validated before anything is written.
func Generate(root string, data *Data) (*Result, error) {
	if data.Type == exttype.Bundle {
		return nil, ErrBundle
	}

	manifestBytes, err := render("extension.yaml.tmpl", data)
	if err != nil {
		return nil, err
	}
	res, err := manifest.Validate(manifestBytes)
	if err != nil {
		return nil, fmt.Errorf("validating generated manifest: %w", err)
	}
	if !res.Valid {
		return nil, fmt.Errorf("generated manifest is invalid: %s", res.Issues[0])
	}

	entryBytes, err := render("index.js.tmpl", data)
	if err != nil {
		return nil, err
	}

	outputDir := Dir(root, data)
	// Refuse to overwrite an existing extension.
	if entries, err := os.ReadDir(outputDir); err == nil && len(entries) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}
	if err := os.MkdirAll(filepath.Join(outputDir, "src"), 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	files := []struct {
		name string
		data []byte
	}{
		{manifest.FileName, manifestBytes},
		{filepath.Join("src", "index.js"), entryBytes},
	}
	result := &Result{OutputDir: outputDir}
	for _, f := range files {
		outPath := filepath.Join(outputDir, f.name)
		if err := os.WriteFile(outPath, f.data, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.Files = append(result.Files, f.name)
	}
	return result, nil
}

func render(name string, data *Data) ([]byte, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// title turns "sales-chart" into "Sales Chart".
func title(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
