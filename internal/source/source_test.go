package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lalg-lang/lalg/internal/errors"
)

func TestLoadReadsAllowedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lalg")
	if err := os.WriteFile(path, []byte("program P;\nbegin\nend.\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fs := New(nil)
	text, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if text != "program P;\nbegin\nend.\n" {
		t.Fatalf("unexpected contents: %q", text)
	}
}

func TestLoadAcceptsSecondDefaultExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.pas")
	if err := os.WriteFile(path, []byte("program P; begin end."), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fs := New(nil)
	if _, err := fs.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoadRejectsDisallowedExtensionWithoutTouchingDisk(t *testing.T) {
	// No such file exists; a correct implementation must fail on the
	// extension check before ever calling os.ReadFile.
	fs := New(nil)
	if _, err := fs.Load("/nonexistent/dir/prog.txt"); err == nil {
		t.Fatal("expected an error for a disallowed extension")
	}
}

func TestLoadWrapsMissingFileAsIoError(t *testing.T) {
	dir := t.TempDir()
	fs := New(nil)
	_, err := fs.Load(filepath.Join(dir, "missing.lalg"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if ce, ok := err.(*errors.CompilerError); !ok || ce.Kind != errors.KindIO {
		t.Fatalf("expected an IoError, got %v", err)
	}
}

func TestNewHonorsCustomExtensionsCaseInsensitively(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.SRC")
	if err := os.WriteFile(path, []byte("program P; begin end."), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	fs := New([]string{".src"})
	if _, err := fs.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := fs.Load(filepath.Join(dir, "prog.lalg")); err == nil {
		t.Fatal("expected .lalg to be rejected once extensions is overridden to only .src")
	}
}
