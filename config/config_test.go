package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSchema(t *testing.T) {
	schemaJSON, err := JSONSchema()

	assert.NoError(t, err)
	assert.NotNil(t, schemaJSON)
	unmarshalledSchema := &jsonschema.Schema{}
	err = unmarshalledSchema.UnmarshalJSON(schemaJSON)
	assert.NoError(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without config file", func(t *testing.T) {
		viper.Reset()
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(t.TempDir()))
		t.Cleanup(func() { _ = os.Chdir(wd) })

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
		assert.Equal(t, "sk-", cfg.LLM.APIKeyPrefix)
		assert.Equal(t, "text-embedding-3-small", cfg.Embeddings.Model)
		assert.Equal(t, 2, cfg.RAG.TopK)
		assert.Equal(t, 12, cfg.Apps.StockPrize.ForecastPeriods)
		assert.Equal(t, 0.1, cfg.Sentiment.PolarityThreshold)
		assert.Equal(t, "https://router.huggingface.co/hf-inference/models", cfg.Sentiment.HuggingFaceEndpoint)
		assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
		assert.Equal(t, DefaultChainReactCorpusURL, cfg.Apps.ChainReact.CorpusURL)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		viper.Reset()
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := []byte("llm:\n  model: gpt-4o\n  timeout: 5s\nrag:\n  top_k: 3\n")
		require.NoError(t, os.WriteFile(path, content, 0o600))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o", cfg.LLM.Model)
		assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
		assert.Equal(t, 3, cfg.RAG.TopK)
	})

	t.Run("explicit missing file is an error", func(t *testing.T) {
		viper.Reset()
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
