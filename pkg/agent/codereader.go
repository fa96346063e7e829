package agent

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"

	"github.com/regsentry/regsentry/pkg/embedding"
	"github.com/regsentry/regsentry/pkg/models"
	"github.com/regsentry/regsentry/pkg/vectorindex"
)

// DefaultTopK is the number of candidate files CodeReader retrieves.
const DefaultTopK = 10

// DefaultThreshold is CodeReader's default relevance cutoff: 0.0 always
// returns the top-k if any rows exist.
const DefaultThreshold = 0.0

// SnippetLength is the number of leading characters of a file's content
// surfaced as ImpactedFile.Snippet.
const SnippetLength = 200

// Searcher is the subset of *vectorindex.Index that CodeReader depends on,
// accepted as an interface so callers can substitute a fake in tests.
type Searcher interface {
	Search(ctx context.Context, queryVector embedding.Vector, topK int, threshold float64) ([]vectorindex.SearchResult, error)
}

// CodeReader retrieves the files most likely impacted by a regulatory
// change via semantic search over the indexed repository.
type CodeReader struct {
	Encoder   *embedding.Encoder
	Index     Searcher
	TopK      int
	Threshold float64

	// KeywordBoost implements Open Question (b): an optional,
	// off-by-default additive score boost for files whose content
	// contains one of these (case-insensitive) keywords. Never a
	// substitute for the embedding search itself.
	KeywordBoost []string
	BoostAmount  float64
}

// Name implements Agent.
func (c *CodeReader) Name() string { return "CodeReader" }

// Run implements Agent.
func (c *CodeReader) Run(ctx context.Context, state *models.State) error {
	state.ImpactedFiles = []models.ImpactedFile{}

	if state.RegulatoryModel == nil {
		return nil
	}

	query := buildCodeReaderQuery(state.RegulatoryModel)
	vec, err := c.Encoder.Encode(query)
	if err != nil {
		slog.Warn("CodeReader: failed to encode query, returning no impacted files",
			"execution_id", state.ExecutionID, "error", err)
		return nil
	}

	topK := c.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	// Cosine scores can be negative, so a threshold of 0 or below applies no
	// cutoff at all: the top-k are returned whenever any rows exist.
	threshold := c.Threshold
	if threshold <= 0 {
		threshold = math.Inf(-1)
	}

	results, err := c.Index.Search(ctx, vec, topK, threshold)
	if err != nil {
		if errors.Is(err, vectorindex.ErrIndexUnavailable) {
			slog.Warn("CodeReader: vector index unavailable, degrading to no impacted files",
				"execution_id", state.ExecutionID, "error", err)
			return nil
		}
		return err
	}

	if len(c.KeywordBoost) > 0 {
		results = c.applyKeywordBoost(results)
	}

	files := make([]models.ImpactedFile, 0, len(results))
	for _, r := range results {
		files = append(files, models.ImpactedFile{
			FilePath:       r.FilePath,
			RelevanceScore: clampScore(r.Score),
			Snippet:        snippet(r.Content),
		})
	}
	state.ImpactedFiles = files
	return nil
}

func buildCodeReaderQuery(m *models.RegulatoryModel) string {
	var b strings.Builder
	b.WriteString(m.Title)
	b.WriteString(" ")
	b.WriteString(m.Description)
	for _, req := range m.Requirements {
		b.WriteString(" ")
		b.WriteString(req)
	}
	return b.String()
}

// applyKeywordBoost nudges scores upward for keyword hits and re-sorts,
// preserving the strict descending-score / file_path-ascending-tiebreak
// ordering Search already guarantees.
func (c *CodeReader) applyKeywordBoost(results []vectorindex.SearchResult) []vectorindex.SearchResult {
	boost := c.BoostAmount
	if boost <= 0 {
		boost = 0.05
	}
	boosted := make([]vectorindex.SearchResult, len(results))
	copy(boosted, results)

	lowerKeywords := make([]string, len(c.KeywordBoost))
	for i, kw := range c.KeywordBoost {
		lowerKeywords[i] = strings.ToLower(kw)
	}

	for i := range boosted {
		content := strings.ToLower(boosted[i].Content)
		for _, kw := range lowerKeywords {
			if kw != "" && strings.Contains(content, kw) {
				boosted[i].Score = clampScore(boosted[i].Score + boost)
				break
			}
		}
	}

	sortResultsDeterministically(boosted)
	return boosted
}

func sortResultsDeterministically(results []vectorindex.SearchResult) {
	for i := 1; i < len(results); i++ {
		for j := i; j > 0; j-- {
			a, b := results[j-1], results[j]
			if a.Score > b.Score || (a.Score == b.Score && a.FilePath <= b.FilePath) {
				break
			}
			results[j-1], results[j] = results[j], results[j-1]
		}
	}
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func snippet(content string) string {
	r := []rune(content)
	if len(r) <= SnippetLength {
		return content
	}
	return string(r[:SnippetLength])
}
