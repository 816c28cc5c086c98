package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestBuildAndSave(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"panel.bin":          "edid",
		"panel.hex":          "edid-hex",
		"diagnostics.ndjson": "diagnostics",
		"report.pdf":         "pdf",
		"notes.md":           "other",
	}
	var paths []string
	for name := range files {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(name), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		paths = append(paths, p)
	}
	m, err := Build(paths)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(m.Items) != len(files) {
		t.Fatalf("items = %d", len(m.Items))
	}
	for _, it := range m.Items {
		if want := files[filepath.Base(it.Path)]; it.Type != want {
			t.Fatalf("%s: type %s, want %s", it.Path, it.Type, want)
		}
		if len(it.Sha256) != 64 || it.Size != int64(len(filepath.Base(it.Path))) {
			t.Fatalf("bad item %+v", it)
		}
	}

	out := filepath.Join(dir, "manifest.json")
	if err := Save(m, out); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var back Manifest
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.ShaAlgo != "sha256" || len(back.Items) != len(files) {
		t.Fatalf("saved manifest %+v", back)
	}
}

func TestBuildMissingFile(t *testing.T) {
	if _, err := Build([]string{filepath.Join(t.TempDir(), "missing.bin")}); err == nil {
		t.Fatalf("expected an error")
	}
}
