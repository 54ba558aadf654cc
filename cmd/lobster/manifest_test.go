package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "lobster.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
}

func TestLoadProjectManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[package]
name = "demo"
version = "0.2.0"

[build]
image = "out/demo.lbc"
`)
	m, ok, err := loadProjectManifest(dir)
	if err != nil || !ok {
		t.Fatalf("load: %v, %v", ok, err)
	}
	if m.Config.Package.Name != "demo" || m.Config.Build.Image != "out/demo.lbc" {
		t.Fatalf("parsed %+v", m.Config)
	}
	if m.Root != dir {
		t.Fatalf("root = %q, want %q", m.Root, dir)
	}
}

func TestLoadProjectManifestSearchesUpward(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	m, ok, err := loadProjectManifest(nested)
	if err != nil || !ok {
		t.Fatalf("load: %v, %v", ok, err)
	}
	if m.Root != dir {
		t.Fatalf("root = %q, want %q", m.Root, dir)
	}
}

func TestLoadProjectManifestRejectsBadTOML(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package\nname =")
	_, ok, err := loadProjectManifest(dir)
	if !ok || err == nil {
		t.Fatalf("expected parse failure, got %v, %v", ok, err)
	}
}
