package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsentry/regsentry/pkg/embedding"
)

type fakeUpserter struct {
	upserted map[string]string
	failOn   string
}

func newFakeUpserter() *fakeUpserter {
	return &fakeUpserter{upserted: map[string]string{}}
}

func (f *fakeUpserter) Upsert(ctx context.Context, filePath, content string, vector embedding.Vector) error {
	if filePath == f.failOn {
		return assert.AnError
	}
	f.upserted[filePath] = content
	return nil
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestIndexerIndexesMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pkg/pix/validate.py", "def validate_key(): pass")
	writeFile(t, dir, "README.md", "not python")

	enc, err := embedding.NewEncoder("hashing-trick-v1")
	require.NoError(t, err)
	store := newFakeUpserter()
	idx := &Indexer{Encoder: enc, Store: store}

	result, err := idx.Index(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Indexed)
	assert.Contains(t, store.upserted, "pkg/pix/validate.py")
	assert.NotContains(t, store.upserted, "README.md")
}

func TestIndexerSkipsVendoredPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vendor/lib/mod.py", "ignored")
	writeFile(t, dir, "app/main.py", "kept")

	enc, err := embedding.NewEncoder("hashing-trick-v1")
	require.NoError(t, err)
	store := newFakeUpserter()
	idx := &Indexer{Encoder: enc, Store: store}

	result, err := idx.Index(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Indexed)
	assert.Contains(t, store.upserted, "app/main.py")
	assert.NotContains(t, store.upserted, "vendor/lib/mod.py")
}

func TestIndexerIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app/main.py", "kept")

	enc, err := embedding.NewEncoder("hashing-trick-v1")
	require.NoError(t, err)
	store := newFakeUpserter()
	idx := &Indexer{Encoder: enc, Store: store}

	r1, err := idx.Index(context.Background(), dir)
	require.NoError(t, err)
	r2, err := idx.Index(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, r1.Indexed, r2.Indexed)
	assert.Len(t, store.upserted, 1)
}

func TestIndexerAbortsOnUpsertFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app/main.py", "kept")

	enc, err := embedding.NewEncoder("hashing-trick-v1")
	require.NoError(t, err)
	store := newFakeUpserter()
	store.failOn = "app/main.py"
	idx := &Indexer{Encoder: enc, Store: store}

	_, err = idx.Index(context.Background(), dir)
	assert.Error(t, err)
}

func TestIndexerRespectsCustomIncludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app/main.go", "package main")
	writeFile(t, dir, "app/main.py", "pass")

	enc, err := embedding.NewEncoder("hashing-trick-v1")
	require.NoError(t, err)
	store := newFakeUpserter()
	idx := &Indexer{Encoder: enc, Store: store, Include: []string{"**/*.go"}}

	result, err := idx.Index(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Indexed)
	assert.Contains(t, store.upserted, "app/main.go")
}
