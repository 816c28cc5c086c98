package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edidd.yaml")
	body := "port: 9090\nstorageDir: state\npatchLog: logs/patches.jsonl\nlang: tr\nlogs:\n  maxSizeMB: 3\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Port != 9090 || cfg.Lang != "tr" {
		t.Fatalf("cfg %+v", cfg)
	}
	if cfg.StorageDir != filepath.Join(dir, "state") {
		t.Fatalf("storage dir %s", cfg.StorageDir)
	}
	if cfg.PatchLog != filepath.Join(dir, "logs", "patches.jsonl") {
		t.Fatalf("patch log %s", cfg.PatchLog)
	}
	if cfg.Logs.Directory != filepath.Join(dir, "state", "logs") {
		t.Fatalf("log dir %s", cfg.Logs.Directory)
	}
	if cfg.Logs.MaxSizeMB != 3 || cfg.Logs.MaxAgeDays != 7 || cfg.Logs.MaxBackups != 5 {
		t.Fatalf("log rotation %+v", cfg.Logs)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Port != 8080 || cfg.Lang != "en" || cfg.Logs.MaxSizeMB != 25 {
		t.Fatalf("defaults %+v", cfg)
	}
}

func TestLoadConfigRejects(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"lang.yaml": "lang: fr\n",
		"port.yaml": "port: 70000\n",
		"bad.yaml":  "port: [\n",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := loadConfig(path); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
	if _, err := loadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("missing non-default config must fail")
	}
}
