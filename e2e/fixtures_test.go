//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
	"strings"
)

// CreateTestWorkspace creates the directory the app runs in
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteConfig writes .formdeck.toml into the workspace
func (tf *TUITestFramework) WriteConfig(content string) (string, error) {
	path := filepath.Join(tf.workspace, ".formdeck.toml")
	return path, os.WriteFile(path, []byte(content), 0644)
}

// WriteCatalog writes a YAML place catalog into the workspace.
// Each entry is "Name|Country".
func (tf *TUITestFramework) WriteCatalog(entries ...string) (string, error) {
	var b strings.Builder
	b.WriteString("places:\n")
	for _, e := range entries {
		name, country, _ := strings.Cut(e, "|")
		b.WriteString("  - name: " + name + "\n")
		b.WriteString("    country: " + country + "\n")
	}
	path := filepath.Join(tf.workspace, "places.yaml")
	return path, os.WriteFile(path, []byte(b.String()), 0644)
}
