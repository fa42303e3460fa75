package main

import (
	"os"
	"path/filepath"
	"testing"
)

// createSite creates a site root with report folders under historical-reports.
// It returns the root and the path of an empty configuration file inside it,
// so that tests never pick up a configuration file from the home directory.
func createSite(t *testing.T, names ...string) (string, string) {
	t.Helper()

	root := t.TempDir()
	for _, name := range names {
		dir := filepath.Join(root, "historical-reports", name)
		if err := os.MkdirAll(dir, 0750); err != nil {
			t.Fatalf("failed to create report dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html></html>"), 0600); err != nil {
			t.Fatalf("failed to create report: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(root, "historical-reports"), 0750); err != nil {
		t.Fatalf("failed to create reports dir: %v", err)
	}

	cfgPath := writeConfig(t, root, "")
	return root, cfgPath
}

// writeConfig writes a configuration file into dir and returns its path.
func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "test.reportindex.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}
