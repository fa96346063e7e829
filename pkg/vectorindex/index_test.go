package vectorindex_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsentry/regsentry/pkg/embedding"
	"github.com/regsentry/regsentry/pkg/vectorindex"
	testdb "github.com/regsentry/regsentry/test/database"
)

func mustEncode(t *testing.T, enc *embedding.Encoder, text string) embedding.Vector {
	t.Helper()
	v, err := enc.Encode(text)
	require.NoError(t, err)
	return v
}

func TestUpsertThenSearchReturnsBestMatchFirst(t *testing.T) {
	client := testdb.NewTestClient(t)
	idx := vectorindex.New(client.Client)
	ctx := context.Background()

	enc, err := embedding.NewEncoder("hashing-trick-v1")
	require.NoError(t, err)

	require.NoError(t, idx.Upsert(ctx, "domain/validators.py", "def validate_pix_key(key): pass", mustEncode(t, enc, "def validate_pix_key(key): pass")))
	require.NoError(t, idx.Upsert(ctx, "domain/unrelated.py", "def compute_tax(x): pass", mustEncode(t, enc, "def compute_tax(x): pass")))

	query := mustEncode(t, enc, "validacao de chave pix def validate_pix_key")
	results, err := idx.Search(ctx, query, 10, 0.0)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "domain/validators.py", results[0].FilePath)

	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].Score, results[0].Score)
	}
}

func TestUpsertIsIdempotentByFilePath(t *testing.T) {
	client := testdb.NewTestClient(t)
	idx := vectorindex.New(client.Client)
	ctx := context.Background()

	enc, err := embedding.NewEncoder("hashing-trick-v1")
	require.NoError(t, err)

	require.NoError(t, idx.Upsert(ctx, "a.py", "version one", mustEncode(t, enc, "version one")))
	before, err := idx.Count(ctx)
	require.NoError(t, err)

	require.NoError(t, idx.Upsert(ctx, "a.py", "version two", mustEncode(t, enc, "version two")))
	after, err := idx.Count(ctx)
	require.NoError(t, err)

	assert.Equal(t, before, after)

	rec, err := idx.Get(ctx, "a.py")
	require.NoError(t, err)
	assert.Equal(t, "version two", rec.Content)
}

func TestGetReturnsNotFoundForUnknownPath(t *testing.T) {
	client := testdb.NewTestClient(t)
	idx := vectorindex.New(client.Client)

	_, err := idx.Get(context.Background(), "does/not/exist.py")
	assert.ErrorIs(t, err, vectorindex.ErrNotFound)
}

func TestSearchFiltersByThreshold(t *testing.T) {
	client := testdb.NewTestClient(t)
	idx := vectorindex.New(client.Client)
	ctx := context.Background()

	enc, err := embedding.NewEncoder("hashing-trick-v1")
	require.NoError(t, err)

	require.NoError(t, idx.Upsert(ctx, "a.py", "completely unrelated content about bananas", mustEncode(t, enc, "completely unrelated content about bananas")))

	query := mustEncode(t, enc, "validacao de chave pix")
	results, err := idx.Search(ctx, query, 10, 0.999)
	require.NoError(t, err)
	assert.Empty(t, results)
}
