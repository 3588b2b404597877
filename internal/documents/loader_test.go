package documents

import (
	"bytes"
	"context"
	"crypto/sha256"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"guide.md":        {Data: []byte("---\ntitle: Guide\n---\n# Guide\n")},
		"notes.txt":       {Data: []byte("not markdown")},
		"nested/deep.md":  {Data: []byte("# Deep\n")},
		"nested/skip.txt": {Data: []byte("ignored")},
	}
}

func TestLoadFileParsesAndChecksums(t *testing.T) {
	loader := NewLoader(testFS(), LoaderConfig{})

	result, err := loader.LoadFile(context.Background(), "guide.md", LoadParams{})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	doc := result.Document
	if doc.FilePath != "guide.md" {
		t.Fatalf("unexpected path %q", doc.FilePath)
	}
	if doc.FrontMatter.Title != "Guide" {
		t.Fatalf("unexpected title %q", doc.FrontMatter.Title)
	}

	sum := sha256.Sum256(result.Source)
	if !bytes.Equal(doc.Checksum, sum[:]) {
		t.Fatalf("checksum mismatch")
	}
}

func TestLoadFileMissing(t *testing.T) {
	loader := NewLoader(testFS(), LoaderConfig{})

	if _, err := loader.LoadFile(context.Background(), "absent.md", LoadParams{}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadDirectoryNonRecursive(t *testing.T) {
	loader := NewLoader(testFS(), LoaderConfig{})

	results, err := loader.LoadDirectory(context.Background(), ".", LoadParams{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(results) != 1 || results[0].Document.FilePath != "guide.md" {
		t.Fatalf("expected only root-level markdown, got %v", paths(results))
	}
}

func TestLoadDirectoryRecursive(t *testing.T) {
	loader := NewLoader(testFS(), LoaderConfig{Recursive: true})

	results, err := loader.LoadDirectory(context.Background(), ".", LoadParams{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	got := paths(results)
	if len(got) != 2 || got[0] != "guide.md" || got[1] != "nested/deep.md" {
		t.Fatalf("expected sorted recursive listing, got %v", got)
	}
}

func TestLoadDirectoryRecursiveOverride(t *testing.T) {
	loader := NewLoader(testFS(), LoaderConfig{})
	recurse := true

	results, err := loader.LoadDirectory(context.Background(), ".", LoadParams{Recursive: &recurse})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected override to enable recursion, got %v", paths(results))
	}
}

func TestLoadDirectoryPatternOverride(t *testing.T) {
	loader := NewLoader(testFS(), LoaderConfig{Recursive: true})

	results, err := loader.LoadDirectory(context.Background(), ".", LoadParams{Pattern: "*.txt"})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	got := paths(results)
	if len(got) != 2 || got[0] != "nested/skip.txt" || got[1] != "notes.txt" {
		t.Fatalf("expected txt files, got %v", got)
	}
}

func TestLoadFileCanceledContext(t *testing.T) {
	loader := NewLoader(testFS(), LoaderConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := loader.LoadFile(ctx, "guide.md", LoadParams{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func paths(results []*DocumentResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Document.FilePath)
	}
	return out
}
