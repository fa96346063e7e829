package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsentry/regsentry/pkg/audit"
	"github.com/regsentry/regsentry/pkg/models"
	testdb "github.com/regsentry/regsentry/test/database"
)

func newTestState(t *testing.T) *models.State {
	t.Helper()
	return models.NewState(models.NewExecutionID(), "RESOLUCAO BCB 789/2024", "repo-a", time.Now().UTC())
}

func TestSaveAndGetRoundTrips(t *testing.T) {
	client := testdb.NewTestClient(t)
	store := audit.New(client.Client)
	ctx := context.Background()

	state := newTestState(t)
	changeDetected := true
	state.ChangeDetected = &changeDetected
	risk := models.RiskHigh
	state.RiskLevel = &risk
	state.RegulatoryModel = &models.RegulatoryModel{
		Title:       "Pix key validation",
		Description: "New validation rules",
	}
	spec := "# Overview\n..."
	state.TechnicalSpec = &spec

	require.NoError(t, store.Save(ctx, state))

	got, err := store.Get(ctx, state.ExecutionID)
	require.NoError(t, err)
	assert.Equal(t, state.ExecutionID, got.ExecutionID)
	assert.Equal(t, state.RegulatoryText, got.RegulatoryText)
	require.NotNil(t, got.ChangeDetected)
	assert.True(t, *got.ChangeDetected)
	require.NotNil(t, got.RiskLevel)
	assert.Equal(t, models.RiskHigh, *got.RiskLevel)
	require.NotNil(t, got.RegulatoryModel)
	assert.Equal(t, "Pix key validation", got.RegulatoryModel.Title)
	require.NotNil(t, got.TechnicalSpec)
	assert.Equal(t, spec, *got.TechnicalSpec)
}

func TestSaveOverwritesOnRetry(t *testing.T) {
	client := testdb.NewTestClient(t)
	store := audit.New(client.Client)
	ctx := context.Background()

	state := newTestState(t)
	require.NoError(t, store.Save(ctx, state))

	errMsg := "Sentinel: llm auth failed"
	state.Error = &errMsg
	require.NoError(t, store.Save(ctx, state))

	got, err := store.Get(ctx, state.ExecutionID)
	require.NoError(t, err)
	require.NotNil(t, got.Error)
	assert.Equal(t, errMsg, *got.Error)
}

func TestSavePersistsPartialStateWithError(t *testing.T) {
	client := testdb.NewTestClient(t)
	store := audit.New(client.Client)
	ctx := context.Background()

	state := newTestState(t)
	state.SetError("Sentinel", "boom")

	require.NoError(t, store.Save(ctx, state))

	got, err := store.Get(ctx, state.ExecutionID)
	require.NoError(t, err)
	require.NotNil(t, got.Error)
	assert.Contains(t, *got.Error, "Sentinel: boom")
}

func TestGetReturnsNotFoundForUnknownID(t *testing.T) {
	client := testdb.NewTestClient(t)
	store := audit.New(client.Client)

	_, err := store.Get(context.Background(), models.NewExecutionID())
	assert.ErrorIs(t, err, audit.ErrNotFound)
}

func TestDeleteOlderThanRemovesOnlyStaleRows(t *testing.T) {
	client := testdb.NewTestClient(t)
	store := audit.New(client.Client)
	ctx := context.Background()

	old := models.NewState(models.NewExecutionID(), "texto", "repo", time.Now().Add(-400*24*time.Hour))
	recent := models.NewState(models.NewExecutionID(), "texto", "repo", time.Now())
	require.NoError(t, store.Save(ctx, old))
	require.NoError(t, store.Save(ctx, recent))

	count, err := store.DeleteOlderThan(ctx, time.Now().Add(-365*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = store.Get(ctx, old.ExecutionID)
	assert.ErrorIs(t, err, audit.ErrNotFound)

	_, err = store.Get(ctx, recent.ExecutionID)
	assert.NoError(t, err)
}
