// Package api implements RegSentry's HTTP surface: the /analyze, /health,
// and /audit/{execution_id} endpoints fronting the Orchestrator API (C10).
//
// Server is a thin struct of collaborators with one gin handler method
// per route, each returning a gin.H response body.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/regsentry/regsentry/pkg/audit"
	"github.com/regsentry/regsentry/pkg/database"
	"github.com/regsentry/regsentry/pkg/llmgateway"
	"github.com/regsentry/regsentry/pkg/models"
	"github.com/regsentry/regsentry/pkg/orchestrator"
	"github.com/regsentry/regsentry/pkg/version"
)

// Analyzer is the subset of *orchestrator.Orchestrator the HTTP layer
// depends on, accepted as an interface (the same narrow-dependency style
// as pkg/agent.CodeReader's Searcher) so handlers are testable without a
// real database or LLM backend.
type Analyzer interface {
	Analyze(ctx context.Context, regulatoryText, repoPath string, llmOverride llmgateway.Client) (*orchestrator.Result, error)
	GetAudit(ctx context.Context, executionID string) (*models.State, error)
}

// DBHealthChecker is the subset of *database.Client the /health endpoint
// depends on.
type DBHealthChecker interface {
	Health(ctx context.Context) *database.HealthStatus
}

// VectorCounter is the subset of *vectorindex.Index the /health endpoint
// depends on.
type VectorCounter interface {
	Count(ctx context.Context) (int, error)
}

// Server wires the Orchestrator API and its health dependencies to gin
// routes.
type Server struct {
	orch        Analyzer
	baseLLM     llmgateway.Client
	dbHealth    DBHealthChecker
	vectorIndex VectorCounter
}

// NewServer builds a Server. baseLLM is the process-wide configured LLM
// client, used as the base for the per-request X-LLM-API-Key override.
// dbHealth and vectorIndex are consulted only by the /health endpoint.
func NewServer(orch Analyzer, baseLLM llmgateway.Client, dbHealth DBHealthChecker, vectorIndex VectorCounter) *Server {
	return &Server{orch: orch, baseLLM: baseLLM, dbHealth: dbHealth, vectorIndex: vectorIndex}
}

// Register attaches RegSentry's routes to router.
func (s *Server) Register(router *gin.Engine) {
	router.POST("/analyze", s.analyze)
	router.GET("/health", s.health)
	router.GET("/audit/:execution_id", s.getAudit)
}

// AnalyzeRequest is the POST /analyze request body.
type AnalyzeRequest struct {
	RegulatoryText string `json:"regulatory_text"`
	RepoPath       string `json:"repo_path"`
}

// analyze handles POST /analyze.
func (s *Server) analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.RegulatoryText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "regulatory_text is required"})
		return
	}

	var override llmgateway.Client
	if apiKey := c.GetHeader("X-LLM-API-Key"); apiKey != "" {
		override = llmgateway.WithOverrideAPIKey(s.baseLLM, apiKey)
	}

	result, err := s.orch.Analyze(c.Request.Context(), req.RegulatoryText, req.RepoPath, override)
	if err != nil {
		if errors.Is(err, orchestrator.ErrEmptyRegulatoryText) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusOK
	if result.State.HasError() {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{
		"execution_id":        result.State.ExecutionID,
		"regulatory_text":     result.State.RegulatoryText,
		"repo_path":           result.State.RepoPath,
		"execution_timestamp": result.State.ExecutionTimestamp,
		"change_detected":     result.State.ChangeDetected,
		"risk_level":          result.State.RiskLevel,
		"regulatory_model":    result.State.RegulatoryModel,
		"impacted_files":      result.State.ImpactedFiles,
		"impact_analysis":     result.State.ImpactAnalysis,
		"technical_spec":      result.State.TechnicalSpec,
		"kiro_prompt":         result.State.KiroPrompt,
		"error":               result.State.Error,
		"graph_visualization": result.Visualization,
	})
}

// HealthResponse is the GET /health response body.
type HealthResponse struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	VectorStore string `json:"vector_store"`
	Timestamp   string `json:"timestamp"`
	Version     string `json:"version,omitempty"`
}

// health handles GET /health.
func (s *Server) health(c *gin.Context) {
	ctx := c.Request.Context()

	dbHealth := s.dbHealth.Health(ctx)
	dbStatus := dbHealth.Status

	vectorStatus := "healthy"
	if _, err := s.vectorIndex.Count(ctx); err != nil {
		vectorStatus = "unavailable"
	}

	overall := "healthy"
	if dbStatus != "healthy" || vectorStatus != "healthy" {
		overall = "degraded"
	}

	httpStatus := http.StatusOK
	if dbStatus != "healthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, HealthResponse{
		Status:      overall,
		Database:    dbStatus,
		VectorStore: vectorStatus,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Version:     version.GitCommit,
	})
}

// getAudit handles GET /audit/{execution_id}.
func (s *Server) getAudit(c *gin.Context) {
	executionID := c.Param("execution_id")
	state, err := s.orch.GetAudit(c.Request.Context(), executionID)
	if err != nil {
		if errors.Is(err, audit.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "audit record not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}
