package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvAppliesDefaults(t *testing.T) {
	t.Setenv("LLM_TYPE", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.LLMType)
	assert.Equal(t, "http://localhost:11434", cfg.OllamaBaseURL)
	assert.Equal(t, 256, cfg.LLMMinTokens)
	assert.NotEmpty(t, cfg.DatabaseURL)
	assert.Equal(t, 365, cfg.AuditRetentionDays)
	assert.Equal(t, 24*time.Hour, cfg.CleanupInterval)
	assert.Equal(t, 120*time.Second, cfg.RunBudget)
}

func TestValidateRejectsUnknownLLMType(t *testing.T) {
	cfg := Config{LLMType: "claude", DatabaseURL: "postgres://x", LLMMinTokens: 1}
	err := cfg.Validate()
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "LLM_TYPE", verr.Field)
}

func TestValidateRequiresOpenAIKeyWhenSelected(t *testing.T) {
	cfg := Config{LLMType: "openai", DatabaseURL: "postgres://x", LLMMinTokens: 1}
	err := cfg.Validate()
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "OPENAI_API_KEY", verr.Field)
}

func TestValidateRequiresGeminiKeyWhenSelected(t *testing.T) {
	cfg := Config{LLMType: "gemini", DatabaseURL: "postgres://x", LLMMinTokens: 1}
	err := cfg.Validate()
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "GEMINI_API_KEY", verr.Field)
}

func TestValidateRejectsNonPositiveMinTokens(t *testing.T) {
	cfg := Config{LLMType: "ollama", DatabaseURL: "postgres://x", LLMMinTokens: 0}
	err := cfg.Validate()
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "LLM_MIN_TOKENS", verr.Field)
}

func TestLoadFromEnvParsesKeywordBoostList(t *testing.T) {
	t.Setenv("CODEREADER_KEYWORD_BOOST", "pix,validação,chave")
	t.Setenv("LLM_TYPE", "ollama")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"pix", "validação", "chave"}, cfg.CodeReaderKeywordBoost)
}
