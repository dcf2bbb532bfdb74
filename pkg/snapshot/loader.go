package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads a capture from disk, sniffing the format by magic prefix.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	if len(data) >= magicLen && string(data[:magicLen]) == Magic {
		return DecodeCompressed(data)
	}
	return Decode(data)
}

// LoadDir loads every .json and .snap capture in a directory, keyed by
// file name without extension. Meant for fixture sets; subdirectories and
// other extensions are ignored.
func LoadDir(dir string) (map[string]*Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot dir %s: %w", dir, err)
	}
	out := make(map[string]*Snapshot)
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		ext := filepath.Ext(ent.Name())
		if ext != ".json" && ext != ".snap" {
			continue
		}
		snap, err := Load(filepath.Join(dir, ent.Name()))
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", ent.Name(), err)
		}
		out[strings.TrimSuffix(ent.Name(), ext)] = snap
	}
	return out, nil
}
