package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eringen/linkboard"
	"github.com/eringen/linkboard/manifest"
)

// runImport loads a manifest document (YAML or JSON, chosen by extension)
// into the local SQLite store. Each page-key in the file replaces the
// stored page wholesale; keys absent from the file are left untouched.
func runImport(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var m manifest.Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		m, err = manifest.Parse(data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	store, err := linkboard.NewCardStore(linkboard.EnvOr("LINKBOARD_DB_PATH", "data/manifest.db"))
	if err != nil {
		return err
	}
	defer store.Close()

	for _, key := range m.Keys() {
		if err := store.ReplacePage(key, m[key]); err != nil {
			return fmt.Errorf("import page %q: %w", key, err)
		}
		name := key
		if name == "" {
			name = "(root)"
		}
		fmt.Printf("  imported %s (%d cards)\n", name, len(m[key]))
	}
	return nil
}
