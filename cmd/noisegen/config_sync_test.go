package main

import (
	"encoding/base64"
	"encoding/json"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"voxelnoise/internal/config"
)

func TestWriteConfigFromEnvJSON(t *testing.T) {
	t.Setenv(config.EnvConfigYAMLB64, "")

	cfg := config.Default()
	cfg.Terrain.Seed = 4242
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	t.Setenv(config.EnvConfigJSON, string(data))

	path := filepath.Join(t.TempDir(), "config.json")
	wrote, err := writeConfigFromEnv(path)
	if err != nil {
		t.Fatalf("writeConfigFromEnv: %v", err)
	}
	if !wrote {
		t.Fatalf("expected config to be written")
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if loaded.Terrain.Seed != 4242 {
		t.Fatalf("unexpected seed: %d", loaded.Terrain.Seed)
	}
}

func TestWriteConfigFromEnvYAML(t *testing.T) {
	cfg := config.Default()
	cfg.Output.PreviewDir = "yaml-previews"
	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal yaml: %v", err)
	}
	t.Setenv(config.EnvConfigJSON, "")
	t.Setenv(config.EnvConfigYAMLB64, base64.StdEncoding.EncodeToString(data))

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	wrote, err := writeConfigFromEnv(path)
	if err != nil {
		t.Fatalf("writeConfigFromEnv: %v", err)
	}
	if !wrote {
		t.Fatalf("expected config to be written")
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if loaded.Output.PreviewDir != "yaml-previews" {
		t.Fatalf("unexpected preview dir: %q", loaded.Output.PreviewDir)
	}
}

func TestWriteConfigFromEnvRequiresPath(t *testing.T) {
	t.Setenv(config.EnvConfigYAMLB64, "")
	t.Setenv(config.EnvConfigJSON, `{"terrain":{"seed":1}}`)

	if _, err := writeConfigFromEnv(""); err == nil {
		t.Fatalf("expected error when no config path is provided")
	}
}

func TestWriteConfigFromEnvNoop(t *testing.T) {
	t.Setenv(config.EnvConfigJSON, "")
	t.Setenv(config.EnvConfigYAMLB64, "")

	wrote, err := writeConfigFromEnv(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wrote {
		t.Fatalf("expected no config to be written")
	}
}
