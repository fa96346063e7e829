// Package embedding provides a deterministic, dependency-free text encoder
// used by the code-retrieval subsystem.
//
// Small and pure-Go by design: a real embedding model would need
// network/model-weight access that is unavailable after warm-up, so
// RegSentry uses a hashing-trick bag-of-n-grams encoder: deterministic,
// local, and stable across process restarts.
package embedding

import (
	"errors"
	"hash/fnv"
	"math"
	"strings"
)

// Dimension is the fixed output size of Encoder, matching default
// expectation of d = 384.
const Dimension = 384

// ErrEmptyText is returned by Encode when given empty input.
var ErrEmptyText = errors.New("embedding: cannot encode empty text")

// ErrModelLoad is returned by NewEncoder on fatal startup failure. The
// hashing-trick encoder has no load step that can fail, but the error type
// is kept for interface completeness with the encoder's error taxonomy.
var ErrModelLoad = errors.New("embedding: model load failed")

// Vector is a fixed-dimension, L2-normalized embedding.
type Vector []float32

// Encoder implements deterministic text-to-vector encoding (C1).
type Encoder struct {
	dim     int
	ngram   int
	modelID string
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithNGramSize overrides the default character n-gram size (3).
func WithNGramSize(n int) Option {
	return func(e *Encoder) { e.ngram = n }
}

// NewEncoder constructs an Encoder identified by modelID (the value of the
// EMBEDDING_MODEL configuration key). The identity only affects the hash
// seed, so two encoders built with the same modelID always agree — which is
// what "deterministic for a fixed model identity" requires.
func NewEncoder(modelID string, opts ...Option) (*Encoder, error) {
	if modelID == "" {
		modelID = "hashing-trick-v1"
	}
	e := &Encoder{dim: Dimension, ngram: 3, modelID: modelID}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Dimension returns d, the fixed output vector size.
func (e *Encoder) Dimension() int { return e.dim }

// Encode deterministically maps text to a fixed-dimension vector.
func (e *Encoder) Encode(text string) (Vector, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	vec := make(Vector, e.dim)
	normalized := strings.ToLower(text)
	for _, gram := range ngrams(normalized, e.ngram) {
		idx, sign := e.hashBucket(gram)
		vec[idx] += sign
	}
	normalize(vec)
	return vec, nil
}

// EncodeBatch encodes multiple texts, preserving order.
func (e *Encoder) EncodeBatch(texts []string) ([]Vector, error) {
	out := make([]Vector, len(texts))
	for i, t := range texts {
		v, err := e.Encode(t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// hashBucket maps an n-gram to a (bucket index, sign) pair using the
// hashing trick (Weinberger et al.): a second hash bit picks the sign so
// that unrelated features tend to cancel rather than only ever add.
func (e *Encoder) hashBucket(gram string) (int, float32) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(e.modelID))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(gram))
	sum := h.Sum64()
	idx := int(sum % uint64(e.dim))
	sign := float32(1)
	if sum&(1<<63) != 0 {
		sign = -1
	}
	return idx, sign
}

func ngrams(s string, n int) []string {
	runes := []rune(s)
	if len(runes) < n {
		return []string{s}
	}
	out := make([]string, 0, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		out = append(out, string(runes[i:i+n]))
	}
	return out
}

func normalize(v Vector) {
	var sumSq float64
	for _, x := range v {
		sumSq += float64(x) * float64(x)
	}
	if sumSq == 0 {
		return
	}
	norm := float32(math.Sqrt(sumSq))
	for i := range v {
		v[i] /= norm
	}
}
