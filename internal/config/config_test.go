package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("OPENAI_BASE_URL", "http://10.0.0.2:1234/v1")
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("LLM_TIMEOUT", "30s")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.OpenAIBaseURL != "http://10.0.0.2:1234/v1" {
		t.Fatalf("OpenAIBaseURL=%q", cfg.OpenAIBaseURL)
	}
	if cfg.Addr() != "0.0.0.0:9000" {
		t.Fatalf("Addr=%q", cfg.Addr())
	}
	if cfg.LLMTimeout != 30*time.Second {
		t.Fatalf("LLMTimeout=%v", cfg.LLMTimeout)
	}
	origins := cfg.CORSOriginList()
	if len(origins) != 2 || origins[0] != "http://a.example" || origins[1] != "http://b.example" {
		t.Fatalf("origins=%v", origins)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"OPENAI_BASE_URL", "HOST", "PORT", "CORS_ORIGINS", "DEFAULT_REGULAR_MODEL", "LLM_TIMEOUT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.OpenAIBaseURL != "http://localhost:1234/v1" {
		t.Fatalf("OpenAIBaseURL=%q", cfg.OpenAIBaseURL)
	}
	if cfg.Addr() != "127.0.0.1:8000" {
		t.Fatalf("Addr=%q", cfg.Addr())
	}
	if cfg.DefaultRegularModel == "" {
		t.Fatal("default regular model unset")
	}
	origins := cfg.CORSOriginList()
	if len(origins) != 1 || origins[0] != "*" {
		t.Fatalf("origins=%v", origins)
	}
}

func TestCORSOriginList_Empty(t *testing.T) {
	cfg := Config{CORSOrigins: ""}
	if got := cfg.CORSOriginList(); got != nil {
		t.Fatalf("origins=%v", got)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	data := "host: 0.0.0.0\nport: 9001\ndefault_regular_model: custom-model\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Host != "0.0.0.0" || cfg.Port != 9001 || cfg.DefaultRegularModel != "custom-model" {
		t.Fatalf("unexpected: %+v", cfg)
	}
}

func TestLoadFile_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.toml")
	data := "host = \"0.0.0.0\"\nport = 9002\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Port != 9002 {
		t.Fatalf("unexpected: %+v", cfg)
	}
}

func TestLoadFile_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	data := `{"port": 9003, "cors_origins": "http://a.example"}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Port != 9003 || cfg.CORSOrigins != "http://a.example" {
		t.Fatalf("unexpected: %+v", cfg)
	}
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.ini")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFile_EmptyPath(t *testing.T) {
	if _, err := LoadFile(""); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoad_FileOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("HOST", "127.0.0.1")

	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte("port: 9999\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// File wins for set fields; env survives for the rest.
	if cfg.Port != 9999 {
		t.Fatalf("Port=%d", cfg.Port)
	}
	if cfg.Host != "127.0.0.1" {
		t.Fatalf("Host=%q", cfg.Host)
	}
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port == 0 {
		t.Fatalf("unexpected: %+v", cfg)
	}
}
