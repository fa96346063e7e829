// Package indexer implements the repository indexer (C4): it walks a
// source tree, encodes each matching file, and upserts the result into the
// vector index. Rows for files that are no longer in the tree are not
// removed.
//
// File discovery is done with the standard library's path/filepath.WalkDir;
// the extension/vendor skip-list is expressed as glob patterns matched with
// github.com/bmatcuk/doublestar/v4.
package indexer

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/regsentry/regsentry/pkg/embedding"
)

// DefaultIncludePatterns is the default extension set indexed.
var DefaultIncludePatterns = []string{"**/*.py"}

// DefaultExcludePatterns skips common vendored/binary directories.
var DefaultExcludePatterns = []string{
	"**/vendor/**",
	"**/.git/**",
	"**/node_modules/**",
	"**/__pycache__/**",
}

// Upserter is the subset of *vectorindex.Index the Indexer depends on.
type Upserter interface {
	Upsert(ctx context.Context, filePath, content string, vector embedding.Vector) error
}

// Indexer walks a repository and upserts its matching files into the vector
// index. It only adds and updates rows; it never deletes them.
type Indexer struct {
	Encoder *embedding.Encoder
	Store   Upserter
	Include []string
	Exclude []string
}

// Result summarizes one Index run.
type Result struct {
	Indexed int
	Skipped int
}

// Index walks repoPath and upserts every matching, encodable file into the
// vector index. Re-running against an unchanged tree is idempotent: the
// same set of file paths is upserted, producing the same cardinality. A
// failure reading or encoding a single file is logged and skipped; an upsert
// failure or an error walking the tree aborts the run.
func (idx *Indexer) Index(ctx context.Context, repoPath string) (Result, error) {
	include := idx.Include
	if len(include) == 0 {
		include = DefaultIncludePatterns
	}
	exclude := idx.Exclude
	if len(exclude) == 0 {
		exclude = DefaultExcludePatterns
	}

	var result Result

	walkErr := filepath.WalkDir(repoPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(repoPath, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if !matchesAny(include, rel) || matchesAny(exclude, rel) {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			slog.Warn("indexer: failed to read file, skipping", "file_path", rel, "error", readErr)
			result.Skipped++
			return nil
		}

		vec, encErr := idx.Encoder.Encode(string(content))
		if encErr != nil {
			slog.Warn("indexer: failed to encode file, skipping", "file_path", rel, "error", encErr)
			result.Skipped++
			return nil
		}

		if upErr := idx.Store.Upsert(ctx, rel, string(content), vec); upErr != nil {
			return fmt.Errorf("indexer: upsert failed for %s: %w", rel, upErr)
		}
		result.Indexed++
		return nil
	})
	if walkErr != nil {
		return result, fmt.Errorf("indexer: walk failed: %w", walkErr)
	}

	return result, nil
}

func matchesAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, path); err == nil && ok {
			return true
		}
	}
	return false
}
