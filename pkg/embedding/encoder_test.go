package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeIsDeterministic(t *testing.T) {
	e, err := NewEncoder("test-model")
	require.NoError(t, err)

	v1, err := e.Encode("validacao de chaves Pix")
	require.NoError(t, err)
	v2, err := e.Encode("validacao de chaves Pix")
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Len(t, v1, Dimension)
}

func TestEncodeRejectsEmptyText(t *testing.T) {
	e, err := NewEncoder("test-model")
	require.NoError(t, err)

	_, err = e.Encode("   ")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestEncodeIsNormalized(t *testing.T) {
	e, err := NewEncoder("test-model")
	require.NoError(t, err)

	v, err := e.Encode("regras de validacao para chaves pix obrigatorio")
	require.NoError(t, err)

	var sumSq float64
	for _, x := range v {
		sumSq += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sumSq), 1e-4)
}

func TestDifferentModelIdentityChangesVector(t *testing.T) {
	e1, _ := NewEncoder("model-a")
	e2, _ := NewEncoder("model-b")

	v1, _ := e1.Encode("chave pix")
	v2, _ := e2.Encode("chave pix")

	assert.NotEqual(t, v1, v2)
}
