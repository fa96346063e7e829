package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsentry/regsentry/pkg/audit"
	"github.com/regsentry/regsentry/pkg/database"
	"github.com/regsentry/regsentry/pkg/llmgateway"
	"github.com/regsentry/regsentry/pkg/models"
	"github.com/regsentry/regsentry/pkg/orchestrator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAnalyzer is a scriptable Analyzer used to exercise the HTTP layer
// without a real database or LLM backend.
type fakeAnalyzer struct {
	result      *orchestrator.Result
	analyzeErr  error
	gotOverride llmgateway.Client
	getAuditErr error
	auditResult *models.State
}

func (f *fakeAnalyzer) Analyze(_ context.Context, regulatoryText, repoPath string, llmOverride llmgateway.Client) (*orchestrator.Result, error) {
	f.gotOverride = llmOverride
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	if f.result != nil {
		return f.result, nil
	}
	state := models.NewState(models.NewExecutionID(), regulatoryText, repoPath, time.Now().UTC())
	return &orchestrator.Result{State: state, Visualization: "digraph {}"}, nil
}

func (f *fakeAnalyzer) GetAudit(_ context.Context, _ string) (*models.State, error) {
	if f.getAuditErr != nil {
		return nil, f.getAuditErr
	}
	return f.auditResult, nil
}

type fakeDBHealth struct{ status string }

func (f *fakeDBHealth) Health(_ context.Context) *database.HealthStatus {
	return &database.HealthStatus{Status: f.status}
}

type fakeVectorCounter struct {
	err error
}

func (f *fakeVectorCounter) Count(_ context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return 42, nil
}

type fakeLLMClient struct{}

func (fakeLLMClient) Name() string { return "fake" }
func (fakeLLMClient) Generate(_ context.Context, _ string, _ int) (string, error) {
	return "ok", nil
}

func newTestServer(orch Analyzer, dbHealth DBHealthChecker, vc VectorCounter) *gin.Engine {
	s := NewServer(orch, fakeLLMClient{}, dbHealth, vc)
	router := gin.New()
	s.Register(router)
	return router
}

func TestAnalyzeReturns200OnSuccess(t *testing.T) {
	router := newTestServer(&fakeAnalyzer{}, &fakeDBHealth{status: "healthy"}, &fakeVectorCounter{})

	body, _ := json.Marshal(AnalyzeRequest{RegulatoryText: "RESOLUCAO BCB 789/2024"})
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.NotEmpty(t, payload["execution_id"])
	assert.Equal(t, "digraph {}", payload["graph_visualization"])
}

func TestAnalyzeReturns400OnEmptyText(t *testing.T) {
	router := newTestServer(&fakeAnalyzer{}, &fakeDBHealth{status: "healthy"}, &fakeVectorCounter{})

	body, _ := json.Marshal(AnalyzeRequest{RegulatoryText: ""})
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeReturns500WhenRunHaltedWithError(t *testing.T) {
	state := models.NewState(models.NewExecutionID(), "texto", "repo", time.Now().UTC())
	state.SetError("Sentinel", "llm auth failed")
	analyzer := &fakeAnalyzer{result: &orchestrator.Result{State: state, Visualization: "digraph {}"}}
	router := newTestServer(analyzer, &fakeDBHealth{status: "healthy"}, &fakeVectorCounter{})

	body, _ := json.Marshal(AnalyzeRequest{RegulatoryText: "texto"})
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Contains(t, payload["error"], "Sentinel")
}

func TestAnalyzeAppliesLLMAPIKeyOverrideHeader(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	router := newTestServer(analyzer, &fakeDBHealth{status: "healthy"}, &fakeVectorCounter{})

	body, _ := json.Marshal(AnalyzeRequest{RegulatoryText: "texto"})
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-LLM-API-Key", "override-key")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, analyzer.gotOverride)
}

func TestHealthReportsHealthyWhenAllUp(t *testing.T) {
	router := newTestServer(&fakeAnalyzer{}, &fakeDBHealth{status: "healthy"}, &fakeVectorCounter{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "healthy", resp.VectorStore)
}

func TestHealthReportsVectorStoreUnavailable(t *testing.T) {
	router := newTestServer(&fakeAnalyzer{}, &fakeDBHealth{status: "healthy"}, &fakeVectorCounter{err: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unavailable", resp.VectorStore)
}

func TestHealthReturns503WhenDatabaseUnhealthy(t *testing.T) {
	router := newTestServer(&fakeAnalyzer{}, &fakeDBHealth{status: "unhealthy"}, &fakeVectorCounter{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetAuditReturns404WhenNotFound(t *testing.T) {
	analyzer := &fakeAnalyzer{getAuditErr: audit.ErrNotFound}
	router := newTestServer(analyzer, &fakeDBHealth{status: "healthy"}, &fakeVectorCounter{})

	req := httptest.NewRequest(http.MethodGet, "/audit/does-not-exist", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAuditReturnsRecordWhenFound(t *testing.T) {
	state := models.NewState("11111111-1111-1111-1111-111111111111", "texto", "repo", time.Now().UTC())
	analyzer := &fakeAnalyzer{auditResult: state}
	router := newTestServer(analyzer, &fakeDBHealth{status: "healthy"}, &fakeVectorCounter{})

	req := httptest.NewRequest(http.MethodGet, "/audit/11111111-1111-1111-1111-111111111111", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got models.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, state.ExecutionID, got.ExecutionID)
}
