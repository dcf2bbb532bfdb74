package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoad_SniffsFormats(t *testing.T) {
	dir := t.TempDir()
	snap := villageCapture()

	plain, err := Encode(snap)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	packed, err := EncodeCompressed(snap)
	if err != nil {
		t.Fatalf("EncodeCompressed: %v", err)
	}
	plainPath := writeFixture(t, dir, "village.json", plain)
	packedPath := writeFixture(t, dir, "village.snap", packed)

	for _, path := range []string{plainPath, packedPath} {
		got, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", path, err)
		}
		if got.Version != snap.Version || len(got.Entities) != len(snap.Entities) {
			t.Errorf("Load(%s) = %q/%d entities, want %q/%d",
				path, got.Version, len(got.Entities), snap.Version, len(snap.Entities))
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	snap := villageCapture()

	plain, err := Encode(snap)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	packed, err := EncodeCompressed(snap)
	if err != nil {
		t.Fatalf("EncodeCompressed: %v", err)
	}
	writeFixture(t, dir, "baseline.json", plain)
	writeFixture(t, dir, "archived.snap", packed)
	writeFixture(t, dir, "notes.txt", []byte("ignore me"))
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	got, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("LoadDir returned %d captures, want 2", len(got))
	}
	for _, key := range []string{"baseline", "archived"} {
		if got[key] == nil {
			t.Errorf("missing capture %q", key)
		}
	}
}

func TestLoadDir_BadFile(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "broken.json", []byte("{nope"))

	if _, err := LoadDir(dir); !errors.Is(err, ErrCorruptSnapshot) {
		t.Errorf("error = %v, want ErrCorruptSnapshot", err)
	}
}
