package fsink

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestListExistingNames_MissingFolderIsEmpty(t *testing.T) {
	s := New(zap.NewNop())

	names, err := s.ListExistingNames(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("ListExistingNames() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("ListExistingNames() = %v, want empty", names)
	}
}

func TestWriteFile_CreatesFolderAndFile(t *testing.T) {
	s := New(zap.NewNop())
	folder := filepath.Join(t.TempDir(), "electricity")

	if err := s.WriteFile(folder, "Halker_Kft_HU001_562.pdf", []byte("pdf-bytes")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	blob, err := os.ReadFile(filepath.Join(folder, "Halker_Kft_HU001_562.pdf"))
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(blob) != "pdf-bytes" {
		t.Errorf("file content = %q, want %q", blob, "pdf-bytes")
	}

	names, err := s.ListExistingNames(folder)
	if err != nil {
		t.Fatalf("ListExistingNames() error = %v", err)
	}
	if _, ok := names["Halker_Kft_HU001_562.pdf"]; !ok {
		t.Errorf("ListExistingNames() = %v, missing the written file", names)
	}
}

func TestWriteFile_NeverOverwrites(t *testing.T) {
	s := New(zap.NewNop())
	folder := t.TempDir()

	if err := s.WriteFile(folder, "invoice.pdf", []byte("first")); err != nil {
		t.Fatalf("first WriteFile() error = %v", err)
	}
	err := s.WriteFile(folder, "invoice.pdf", []byte("second"))
	if !errors.Is(err, ErrNameTaken) {
		t.Fatalf("second WriteFile() error = %v, want ErrNameTaken", err)
	}

	blob, err := os.ReadFile(filepath.Join(folder, "invoice.pdf"))
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(blob) != "first" {
		t.Errorf("file content = %q, the original must survive", blob)
	}
}
