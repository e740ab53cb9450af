package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ShayCichocki/archguide/internal/config"
)

func TestCreateProjectConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GEMINI_API_KEY", "AIzaSyFromEnvironment0000")

	written, err := createProjectConfig(dir, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !written {
		t.Fatal("expected config to be written")
	}

	path := filepath.Join(dir, config.ProjectConfigName)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading template: %v", err)
	}
	if !strings.Contains(string(data), "${GEMINI_API_KEY}") {
		t.Errorf("expected env reference in template, got:\n%s", data)
	}

	cfg, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("template does not load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("template does not validate: %v", err)
	}
	if cfg.Gemini.APIKey != "AIzaSyFromEnvironment0000" {
		t.Errorf("expected key expanded from environment, got %q", cfg.Gemini.APIKey)
	}
}

func TestCreateProjectConfigKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ProjectConfigName)
	if err := os.WriteFile(path, []byte("guide:\n  language: English\n"), 0644); err != nil {
		t.Fatal(err)
	}

	written, err := createProjectConfig(dir, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written {
		t.Error("expected existing config to be kept")
	}

	written, err = createProjectConfig(dir, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !written {
		t.Error("expected --force to overwrite")
	}
}
