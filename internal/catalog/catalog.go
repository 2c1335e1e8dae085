package catalog

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one named endpoint line
type Entry struct {
	Name string `yaml:"name"`
	Line string `yaml:"line"`
}

// Catalog represents the YAML catalog file structure
type Catalog struct {
	Endpoints []Entry `yaml:"endpoints"`
}

// Loader handles loading endpoint catalogs from files
type Loader struct {
	dir string
}

// NewLoader creates a loader resolving relative paths against dir
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load reads a catalog. Files ending in .yaml or .yml hold a Catalog;
// anything else is plain text with one line per entry, where blank lines
// and lines starting with # are skipped.
func (l *Loader) Load(name string) ([]Entry, error) {
	path := l.resolve(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return parseText(data)
	}
}

// Get returns the entry with the given name
func (l *Loader) Get(name, entry string) (*Entry, error) {
	entries, err := l.Load(name)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Name == entry {
			return &entries[i], nil
		}
	}
	return nil, fmt.Errorf("no endpoint named %s in %s", entry, name)
}

// Save writes entries as a YAML catalog, creating parent directories
func (l *Loader) Save(name string, entries []Entry) error {
	path := l.resolve(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := yaml.Marshal(Catalog{Endpoints: entries})
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

func (l *Loader) resolve(name string) string {
	if filepath.IsAbs(name) || l.dir == "" {
		return name
	}
	return filepath.Join(l.dir, name)
}

func parseYAML(data []byte) ([]Entry, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(c.Endpoints))
	for i, e := range c.Endpoints {
		if e.Name == "" {
			c.Endpoints[i].Name = fmt.Sprintf("endpoint-%d", i+1)
		}
		if seen[c.Endpoints[i].Name] {
			return nil, fmt.Errorf("duplicate endpoint name: %s", c.Endpoints[i].Name)
		}
		seen[c.Endpoints[i].Name] = true
	}
	return c.Endpoints, nil
}

func parseText(data []byte) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, Entry{Name: fmt.Sprintf("line-%d", n), Line: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return entries, nil
}
