package main

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestZipDirArchivesFlatFiles(t *testing.T) {
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "ast.json"), []byte(`{"kind":"corpus"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "report.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Mkdir(filepath.Join(src, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	zipPath := filepath.Join(t.TempDir(), "bundle.zip")
	if err := zipDir(src, zipPath); err != nil {
		t.Fatalf("zipDir: %v", err)
	}

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer r.Close()

	names := map[string]bool{}
	for _, f := range r.File {
		names[f.Name] = true
	}
	if !names["ast.json"] || !names["report.json"] {
		t.Errorf("zip contents = %v, want ast.json and report.json", names)
	}
	if names["nested"] || names["nested/"] {
		t.Errorf("zip should not include the nested directory, got %v", names)
	}
}
