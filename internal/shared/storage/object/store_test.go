package object

import (
	"io"
	"strings"
	"testing"
)

func TestNewKeyNamespacesByOwner(t *testing.T) {
	key, err := NewKey("user-1", "my/resume.pdf")
	if err != nil {
		t.Fatalf("NewKey: %v", err)
	}
	parts := strings.Split(key, "/")
	if len(parts) != 2 {
		t.Fatalf("expected owner/name key, got %q", key)
	}
	if len(parts[0]) != 64 {
		t.Fatalf("expected hashed owner segment, got %q", parts[0])
	}
	if !strings.HasSuffix(parts[1], "_my_resume.pdf") {
		t.Fatalf("expected sanitized file name suffix, got %q", parts[1])
	}

	if _, err := NewKey("user-1", "../etc/passwd"); err == nil {
		t.Fatal("expected traversal name to be rejected")
	}
}

func TestSniffReplaysStream(t *testing.T) {
	payload := "%PDF-1.4\n" + strings.Repeat("x", 5000)
	mime, body, err := Sniff(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Sniff: %v", err)
	}
	if mime != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", mime)
	}
	all, _ := io.ReadAll(body)
	if string(all) != payload {
		t.Fatalf("expected full payload replayed, got %d bytes", len(all))
	}

	mime, _, err = Sniff(strings.NewReader("Jane Smith\nEngineer"))
	if err != nil {
		t.Fatalf("Sniff text: %v", err)
	}
	if !strings.HasPrefix(mime, "text/plain") {
		t.Fatalf("expected text/plain, got %q", mime)
	}
}
