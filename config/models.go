package config

import "time"

// Config holds the configuration of the application
// Use config.LoadConfig to create a new instance
type Config struct {
	LLM        LLM              `mapstructure:"llm"`
	Embeddings EmbeddingsConfig `mapstructure:"embeddings"`
	Sentiment  SentimentConfig  `mapstructure:"sentiment"`
	RAG        RAGConfig        `mapstructure:"rag"`
	Apps       AppsConfig       `mapstructure:"apps"`
	Session    SessionConfig    `mapstructure:"session"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
}

type LLM struct {
	Model string `mapstructure:"model"`
	// OpenAIEndpoint overrides the default OpenAI base URL.
	OpenAIEndpoint string `mapstructure:"openai_endpoint"`
	// OpenAIAPIKey is loaded from ENV not config file. It is only used when a
	// session is created without a key.
	OpenAIAPIKey     string        `mapstructure:"openai_api_key"     json:"-"`
	APIKeyPrefix     string        `mapstructure:"api_key_prefix"`
	APIKeyLength     int           `mapstructure:"api_key_length"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRetries       int           `mapstructure:"max_retries"`
	MaxContextTokens int           `mapstructure:"max_context_tokens"`
}

type EmbeddingsConfig struct {
	Model             string  `mapstructure:"model"`
	Concurrency       int     `mapstructure:"concurrency"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

type SentimentConfig struct {
	HuggingFaceEndpoint string `mapstructure:"huggingface_endpoint"`
	HuggingFaceModel    string `mapstructure:"huggingface_model"`
	HuggingFaceToken    string `mapstructure:"huggingface_token"  json:"-"`
	// PolarityThreshold separates NEUTRAL from POSITIVE/NEGATIVE polarity.
	PolarityThreshold float64 `mapstructure:"polarity_threshold"`
}

type RAGConfig struct {
	TopK int `mapstructure:"top_k"`
}

type AppsConfig struct {
	ChainReact ChainReactConfig `mapstructure:"chainreact"`
	StockPrize StockPrizeConfig `mapstructure:"stockprize"`
}

type ChainReactConfig struct {
	CorpusURL string `mapstructure:"corpus_url"`
}

type StockPrizeConfig struct {
	CorpusURL       string `mapstructure:"corpus_url"`
	ForecastPeriods int    `mapstructure:"forecast_periods"`
}

type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
	// SweepInterval is how often expired sessions are discarded.
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}
