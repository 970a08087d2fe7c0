package runner

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, "models:\n  - gpt-4o\n  - gemini-1.5-pro\ninput: answers.tsv\n")
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m.Models, []string{"gpt-4o", "gemini-1.5-pro"}) {
		t.Errorf("models = %v", m.Models)
	}
	if m.Input != "answers.tsv" {
		t.Errorf("input = %q", m.Input)
	}
}

func TestLoadManifestNoModels(t *testing.T) {
	path := writeManifest(t, "input: answers.tsv\n")
	if _, err := LoadManifest(path); err == nil {
		t.Fatal("expected error for manifest without models")
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
