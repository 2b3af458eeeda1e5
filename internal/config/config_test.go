package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Port != 8000 {
		t.Errorf("Port = %d, want 8000", cfg.Port)
	}
	if cfg.AI.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q", cfg.AI.Model)
	}
	if cfg.Search.ResultLimit != 3 {
		t.Errorf("ResultLimit = %d, want 3", cfg.Search.ResultLimit)
	}
	if cfg.Pipeline.MaxIterations != 5 {
		t.Errorf("MaxIterations = %d, want 5", cfg.Pipeline.MaxIterations)
	}
	if cfg.Pipeline.EvidenceLimit != 2000 {
		t.Errorf("EvidenceLimit = %d, want 2000", cfg.Pipeline.EvidenceLimit)
	}
}

func TestLoadFromPathMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Port != 8000 {
		t.Errorf("Port = %d, want default", cfg.Port)
	}
}

func TestLoadFromPathOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sonar.yaml")
	data := `
port: 9090
ai:
  model: gpt-4o
pipeline:
  max_iterations: 3
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.AI.Model != "gpt-4o" {
		t.Errorf("Model = %q", cfg.AI.Model)
	}
	if cfg.Pipeline.MaxIterations != 3 {
		t.Errorf("MaxIterations = %d, want 3", cfg.Pipeline.MaxIterations)
	}
	// untouched sections keep defaults
	if cfg.Pipeline.HistoryWindow != 2 {
		t.Errorf("HistoryWindow = %d, want default 2", cfg.Pipeline.HistoryWindow)
	}
}

func TestLoadFromPathInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("port: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("NAVER_CLIENT_ID", "naver-id")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.AI.APIKey != "sk-test" {
		t.Errorf("APIKey = %q", cfg.AI.APIKey)
	}
	if cfg.Search.Naver.ClientID != "naver-id" {
		t.Errorf("ClientID = %q", cfg.Search.Naver.ClientID)
	}
}
