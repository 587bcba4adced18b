package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTrimAndHasSourceExt(t *testing.T) {
	if !HasSourceExt("foo/bar.sunder") {
		t.Errorf("expected bar.sunder to have the source extension")
	}
	if HasSourceExt("foo/bar.txt") {
		t.Errorf("did not expect bar.txt to have the source extension")
	}
	if got := TrimSourceExt("foo/bar.sunder"); got != "foo/bar" {
		t.Errorf("TrimSourceExt = %q, want foo/bar", got)
	}
	if got := TrimSourceExt("foo/bar"); got != "foo/bar" {
		t.Errorf("TrimSourceExt of extensionless name should be unchanged, got %q", got)
	}
}

func TestImportSearchPathSplitsOnColon(t *testing.T) {
	t.Setenv(ImportPathEnv, "/a/b:/c/d")
	got := ImportSearchPath()
	want := []string{"/a/b", "/c/d"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestImportSearchPathEmptyWhenUnset(t *testing.T) {
	t.Setenv(ImportPathEnv, "")
	if got := ImportSearchPath(); got != nil {
		t.Errorf("expected nil search path for unset env, got %v", got)
	}
}

func TestLoadManifestMissingIsNotAnError(t *testing.T) {
	m, ok, err := LoadManifest(filepath.Join(t.TempDir(), "sunder.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for a missing manifest")
	}
	if m.Name != "" {
		t.Fatalf("expected zero-value manifest, got %+v", m)
	}
}

func TestLoadManifestParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sunder.yaml")
	content := "name: demo\nentry: main.sunder\nimport_path:\n  - vendor\n  - lib\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	m, ok, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true for an existing manifest")
	}
	if m.Name != "demo" || m.Entry != "main.sunder" {
		t.Fatalf("unexpected manifest: %+v", m)
	}
	if len(m.ImportPath) != 2 || m.ImportPath[0] != "vendor" || m.ImportPath[1] != "lib" {
		t.Fatalf("unexpected import path: %v", m.ImportPath)
	}
}
