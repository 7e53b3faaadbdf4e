package ingest

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	content := "First line.\n\n  Second   line with   runs.  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Name != "note" || doc.Format != "txt" {
		t.Errorf("doc = %+v", doc)
	}
	want := "First line.\nSecond line with runs."
	if doc.Text != want {
		t.Errorf("text = %q, want %q", doc.Text, want)
	}
}

func TestLoadMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.md")
	if err := os.WriteFile(path, []byte("# Title\n\nBody text."), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Format != "md" || !strings.Contains(doc.Text, "Body text.") {
		t.Errorf("doc = %+v", doc)
	}
}

func TestLoadDOCX(t *testing.T) {
	raw := buildDOCX(t, `<w:document><w:body><w:p><w:r><w:t>Dear team,</w:t></w:r></w:p><w:p><w:r><w:t>Please review the draft.</w:t></w:r></w:p></w:body></w:document>`)
	path := filepath.Join(t.TempDir(), "memo.docx")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write docx: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.Contains(doc.Text, "Dear team,") || !strings.Contains(doc.Text, "Please review the draft.") {
		t.Errorf("text = %q", doc.Text)
	}
}

func TestLoadUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.mp3")
	if err := os.WriteFile(path, []byte{0x00}, 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected unsupported file type error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func buildDOCX(t *testing.T, bodyXML string) []byte {
	t.Helper()
	var b bytes.Buffer
	zw := zip.NewWriter(&b)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	payload := `<?xml version="1.0" encoding="UTF-8"?>` + bodyXML
	if _, err := f.Write([]byte(payload)); err != nil {
		t.Fatalf("write xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return b.Bytes()
}
