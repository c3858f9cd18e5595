// Package driver runs batches of selections described by a YAML manifest:
// one molecule snapshot plus an ordered set of named selection expressions.
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"molsel/atomselect-go/pkg/interpreter"
	"molsel/atomselect-go/pkg/molecule"
)

// Manifest is the parsed contents of a selection batch file. Selections keep
// their manifest order.
type Manifest struct {
	Path     string
	Molecule string
	Frame    int
	HasFrame bool

	entries []selectionEntry
}

type selectionEntry struct {
	name string
	text string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Result is the outcome of one named selection from a batch.
type Result struct {
	Name      string
	Selection string
	Mask      []bool
	Count     int
}

// LoadManifest parses a selection batch file from disk, returning a validated
// manifest. The molecule path is resolved relative to the manifest location.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Molecule == "" {
		errs.Issues = append(errs.Issues, "molecule must be provided")
	}
	if m.HasFrame && m.Frame < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("frame must not be negative, got %d", m.Frame))
	}
	if len(m.entries) == 0 {
		errs.Issues = append(errs.Issues, "at least one selection must be provided")
	}
	seen := make(map[string]struct{}, len(m.entries))
	for _, entry := range m.entries {
		if entry.name == "" {
			errs.Issues = append(errs.Issues, "selections must not use empty names")
			continue
		}
		if _, dup := seen[entry.name]; dup {
			errs.Issues = append(errs.Issues, fmt.Sprintf("selection %q defined more than once", entry.name))
		}
		seen[entry.name] = struct{}{}
		if strings.TrimSpace(entry.text) == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("selection %q is empty", entry.name))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Selections returns the selection names in manifest order.
func (m *Manifest) Selections() []string {
	names := make([]string, len(m.entries))
	for i, entry := range m.entries {
		names[i] = entry.name
	}
	return names
}

// Run loads the manifest's molecule and evaluates every selection against it,
// in manifest order. The structural analysis is computed once and shared. A
// failing selection aborts the batch with an error naming it.
func (m *Manifest) Run() ([]Result, error) {
	mol, err := molecule.LoadSnapshot(m.Molecule)
	if err != nil {
		return nil, err
	}
	if m.HasFrame {
		if m.Frame >= mol.NumFrames() {
			return nil, fmt.Errorf("manifest: frame %d out of range, snapshot has %d", m.Frame, mol.NumFrames())
		}
		mol.Frame = m.Frame
	}
	analysis := molecule.Analyze(mol, mol.Bonds)

	results := make([]Result, 0, len(m.entries))
	for _, entry := range m.entries {
		mask, err := interpreter.Select(mol, analysis, entry.text)
		if err != nil {
			return nil, fmt.Errorf("manifest: selection %q: %w", entry.name, err)
		}
		count := 0
		for _, in := range mask {
			if in {
				count++
			}
		}
		results = append(results, Result{
			Name:      entry.name,
			Selection: entry.text,
			Mask:      mask,
			Count:     count,
		})
	}
	return results, nil
}

type manifestFile struct {
	Molecule   string       `yaml:"molecule"`
	Frame      *int         `yaml:"frame"`
	Selections selectionMap `yaml:"selections"`
}

// selectionMap preserves the manifest's mapping order, which plain map
// decoding would lose.
type selectionMap struct {
	items []selectionEntry
}

func (sm *selectionMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 {
		sm.items = nil
		return nil
	}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		sm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: selections must be a mapping")
	}
	items := make([]selectionEntry, 0, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		var text string
		if err := valueNode.Decode(&text); err != nil {
			return fmt.Errorf("manifest: selection %q: %w", key, err)
		}
		items = append(items, selectionEntry{
			name: strings.TrimSpace(key),
			text: text,
		})
	}
	sm.items = items
	return nil
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:     path,
		Molecule: strings.TrimSpace(mf.Molecule),
		entries:  mf.Selections.items,
	}
	if mf.Frame != nil {
		result.Frame = *mf.Frame
		result.HasFrame = true
	}
	if result.Molecule != "" && !filepath.IsAbs(result.Molecule) {
		result.Molecule = filepath.Join(filepath.Dir(path), result.Molecule)
	}
	return result
}
