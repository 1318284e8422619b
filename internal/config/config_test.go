package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lalg-lang/lalg/internal/bytecode"
	"github.com/lalg-lang/lalg/internal/source"
)

func TestDefaultUsesPackageDefaults(t *testing.T) {
	cfg := Default()
	if cfg.BufferCapacity != bytecode.DefaultCapacity {
		t.Fatalf("expected BufferCapacity %d, got %d", bytecode.DefaultCapacity, cfg.BufferCapacity)
	}
	if len(cfg.Extensions) != len(source.DefaultExtensions) {
		t.Fatalf("expected %v, got %v", source.DefaultExtensions, cfg.Extensions)
	}
}

func TestLoadWithEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BufferCapacity != bytecode.DefaultCapacity {
		t.Fatalf("expected default buffer capacity, got %d", cfg.BufferCapacity)
	}
}

func TestLoadParsesTomlOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lalg.toml")
	contents := `buffer_capacity = 8192
keywords_file = "keywords.txt"
extensions = [".lalg"]
quiet = true
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BufferCapacity != 8192 {
		t.Fatalf("expected BufferCapacity 8192, got %d", cfg.BufferCapacity)
	}
	if cfg.KeywordsFile != "keywords.txt" {
		t.Fatalf("expected keywords.txt, got %q", cfg.KeywordsFile)
	}
	if len(cfg.Extensions) != 1 || cfg.Extensions[0] != ".lalg" {
		t.Fatalf("expected [.lalg], got %v", cfg.Extensions)
	}
	if !cfg.Quiet {
		t.Fatal("expected Quiet to be true")
	}
}

func TestLoadFallsBackToDefaultBufferCapacityWhenZero(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lalg.toml")
	if err := os.WriteFile(path, []byte("buffer_capacity = 0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BufferCapacity != bytecode.DefaultCapacity {
		t.Fatalf("expected fallback to default capacity %d, got %d", bytecode.DefaultCapacity, cfg.BufferCapacity)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load("/nonexistent/lalg.toml"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
