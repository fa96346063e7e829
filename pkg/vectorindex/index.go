// Package vectorindex implements the vector index (C2): a Postgres-backed
// store of (file_path, content, vector) supporting upsert and top-k cosine
// search.
//
// Grounded on TARSy's data-access idiom: the embeddings table is modeled as
// an ent/schema entity and accessed exclusively through the generated
// *ent.Client (ent.EmbeddingClient's Create/Query/Get builders), the same
// way TARSy's pkg/database callers never issue SQL directly against
// alertsession/llminteraction.
//
// At the POC scale targeted here (thousands of files) RegSentry computes
// cosine similarity directly over the candidate rows rather than
// maintaining a separate approximate-NN structure: the search is always
// exact brute-force cosine, and this is the simplest component that
// satisfies the contract (see DESIGN.md).
package vectorindex

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/regsentry/regsentry/ent"
	entembedding "github.com/regsentry/regsentry/ent/embedding"
	"github.com/regsentry/regsentry/pkg/embedding"
)

// ErrIndexUnavailable is returned when the backing database cannot be
// reached. CodeReader degrades to an empty result on it, and /health
// reports the vector store as unavailable.
var ErrIndexUnavailable = errors.New("vectorindex: index unavailable")

// ErrNotFound is returned by Get when no row matches the given file path.
var ErrNotFound = errors.New("vectorindex: file not found")

// Record is a persisted embedding row.
type Record struct {
	FilePath  string
	Content   string
	Vector    embedding.Vector
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SearchResult is a single top-k search hit.
type SearchResult struct {
	FilePath string
	Content  string
	Score    float64
}

// Index is the vector index (C2), backed by the generated ent client.
type Index struct {
	client *ent.Client
}

// New wraps an existing ent client. The embeddings table is expected to
// already exist (created by pkg/database migrations).
func New(client *ent.Client) *Index {
	return &Index{client: client}
}

// Upsert inserts or replaces the row keyed by filePath, bumping updated_at.
func (idx *Index) Upsert(ctx context.Context, filePath, content string, vec embedding.Vector) error {
	err := idx.client.Embedding.Create().
		SetFilePath(filePath).
		SetContent(content).
		SetVector(vectorToFloat64(vec)).
		OnConflictColumns(entembedding.FieldFilePath).
		UpdateNewValues().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	return nil
}

// Search returns the top-k rows by cosine similarity to queryVector, scored
// `1 - cosine_distance`, strictly ordered by score descending, filtered to
// score >= threshold, with file_path ascending as the deterministic
// tie-breaker.
func (idx *Index) Search(ctx context.Context, queryVector embedding.Vector, topK int, threshold float64) ([]SearchResult, error) {
	rows, err := idx.client.Embedding.Query().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}

	type candidate struct {
		filePath string
		content  string
		score    float64
	}
	var candidates []candidate

	for _, row := range rows {
		score := cosineSimilarity(queryVector, float64ToVector(row.Vector))
		if score >= threshold {
			candidates = append(candidates, candidate{row.FilePath, row.Content, score})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].filePath < candidates[j].filePath
	})

	if topK > 0 && len(candidates) > topK {
		candidates = candidates[:topK]
	}

	results := make([]SearchResult, len(candidates))
	for i, c := range candidates {
		results[i] = SearchResult{FilePath: c.filePath, Content: c.content, Score: c.score}
	}
	return results, nil
}

// Count returns the number of rows in the index.
func (idx *Index) Count(ctx context.Context) (int, error) {
	n, err := idx.client.Embedding.Query().Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	return n, nil
}

// Get retrieves a single record by file path.
func (idx *Index) Get(ctx context.Context, filePath string) (*Record, error) {
	row, err := idx.client.Embedding.Get(ctx, filePath)
	if ent.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	return &Record{
		FilePath:  row.FilePath,
		Content:   row.Content,
		Vector:    float64ToVector(row.Vector),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func cosineSimilarity(a, b embedding.Vector) float64 {
	var dot, normA, normB float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func vectorToFloat64(v embedding.Vector) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

func float64ToVector(v []float64) embedding.Vector {
	out := make(embedding.Vector, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}
