package executor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsentry/regsentry/pkg/models"
)

// fakeStage is a scriptable agent.Agent used to exercise Graph without a
// real LLM or index.
type fakeStage struct {
	name string
	fn   func(ctx context.Context, state *models.State) error
	ran  bool
}

func (f *fakeStage) Name() string { return f.name }

func (f *fakeStage) Run(ctx context.Context, state *models.State) error {
	f.ran = true
	if f.fn != nil {
		return f.fn(ctx, state)
	}
	return nil
}

func newExecutorTestState() *models.State {
	return models.NewState(models.NewExecutionID(), "texto", "repo-a", time.Now().UTC())
}

func TestGraphRunsAllStagesInOrder(t *testing.T) {
	var order []string
	mk := func(name string) *fakeStage {
		return &fakeStage{name: name, fn: func(ctx context.Context, state *models.State) error {
			order = append(order, name)
			return nil
		}}
	}
	g := New(mk("A"), mk("B"), mk("C"))
	state := newExecutorTestState()

	require.NoError(t, g.Execute(context.Background(), state))
	assert.Equal(t, []string{"A", "B", "C"}, order)
	assert.False(t, state.HasError())
}

func TestGraphHaltsOnFatalStageError(t *testing.T) {
	a := &fakeStage{name: "A"}
	b := &fakeStage{name: "B", fn: func(ctx context.Context, state *models.State) error {
		return errors.New("boom")
	}}
	c := &fakeStage{name: "C"}
	g := New(a, b, c)
	state := newExecutorTestState()

	require.NoError(t, g.Execute(context.Background(), state))
	assert.True(t, a.ran)
	assert.True(t, b.ran)
	assert.False(t, c.ran)
	require.True(t, state.HasError())
	assert.Contains(t, *state.Error, "B: boom")
}

func TestGraphHaltsOnValidationFailureAfterStage(t *testing.T) {
	bad := &fakeStage{name: "BadStage", fn: func(ctx context.Context, state *models.State) error {
		state.ImpactAnalysis = []models.Impact{
			{FilePath: "nonexistent.go", ImpactType: models.ImpactValidation, Severity: models.SeverityLow},
		}
		return nil
	}}
	after := &fakeStage{name: "After"}
	g := New(bad, after)
	state := newExecutorTestState()

	require.NoError(t, g.Execute(context.Background(), state))
	assert.False(t, after.ran)
	require.True(t, state.HasError())
	assert.Contains(t, *state.Error, "BadStage")
}

func TestGraphPreservesFirstError(t *testing.T) {
	a := &fakeStage{name: "A", fn: func(ctx context.Context, state *models.State) error {
		return errors.New("first failure")
	}}
	b := &fakeStage{name: "B", fn: func(ctx context.Context, state *models.State) error {
		return errors.New("second failure")
	}}
	g := New(a, b)
	state := newExecutorTestState()

	require.NoError(t, g.Execute(context.Background(), state))
	assert.Contains(t, *state.Error, "first failure")
}

func TestGraphStopsWhenContextAlreadyCancelled(t *testing.T) {
	a := &fakeStage{name: "A"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := New(a)
	state := newExecutorTestState()

	require.NoError(t, g.Execute(ctx, state))
	assert.False(t, a.ran)
	assert.True(t, state.HasError())
}

func TestGraphRejectsNilState(t *testing.T) {
	g := New(&fakeStage{name: "A"})
	err := g.Execute(context.Background(), nil)
	assert.Error(t, err)
}
