package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestParseJSONConfigSuccess(t *testing.T) {
	path := writeTempConfig(t, `{"input":"cover.png","output-dir":"out","passphrase":"secret","erasure":true,"datashard":8,"parityshard":4}`)

	var cfg Config
	if err := parseJSONConfig(&cfg, path); err != nil {
		t.Fatalf("parseJSONConfig returned error: %v", err)
	}

	if cfg.Input != "cover.png" || cfg.OutputDir != "out" {
		t.Fatalf("unexpected paths: %+v", cfg)
	}
	if cfg.Passphrase != "secret" {
		t.Fatalf("expected passphrase to be populated")
	}
	if !cfg.Erasure || cfg.DataShard != 8 || cfg.ParityShard != 4 {
		t.Fatalf("unexpected erasure settings: %+v", cfg)
	}
}

func TestParseJSONConfigMissingFile(t *testing.T) {
	var cfg Config
	missing := filepath.Join(t.TempDir(), "missing.json")
	if err := parseJSONConfig(&cfg, missing); err == nil {
		t.Fatalf("parseJSONConfig expected error for missing file")
	}
}

func TestParseJSONConfigMalformed(t *testing.T) {
	path := writeTempConfig(t, `{not valid json`)
	var cfg Config
	if err := parseJSONConfig(&cfg, path); err == nil {
		t.Fatalf("parseJSONConfig expected error for malformed JSON")
	}
}
