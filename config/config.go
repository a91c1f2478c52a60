package config

import (
	"errors"
	"strings"
	"time"

	"github.com/aifirst/llmdemos/internal"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// We're bootstrapping so avoid any imports from other packages
var log = logrus.New()

const (
	DefaultChainReactCorpusURL = "https://raw.githubusercontent.com/11andrea2233/ChainReact/refs/heads/main/Transportation%20and%20distribution.csv"
	DefaultStockPrizeCorpusURL = "https://raw.githubusercontent.com/11andrea2233/AI_Republic_Projects/refs/heads/main/05_StockPrize_Ally/HistoricalData_1726367135218.csv"
)

func setDefaults() {
	viper.SetDefault("llm.model", "gpt-4o-mini")
	viper.SetDefault("llm.api_key_prefix", "sk-")
	viper.SetDefault("llm.api_key_length", 0)
	viper.SetDefault("llm.timeout", 60*time.Second)
	viper.SetDefault("llm.max_retries", 0)
	viper.SetDefault("llm.max_context_tokens", 128_000)

	viper.SetDefault("embeddings.model", "text-embedding-3-small")
	viper.SetDefault("embeddings.concurrency", 4)
	viper.SetDefault("embeddings.requests_per_second", 20.0)

	viper.SetDefault("sentiment.huggingface_endpoint", "https://router.huggingface.co/hf-inference/models")
	viper.SetDefault(
		"sentiment.huggingface_model",
		"distilbert/distilbert-base-uncased-finetuned-sst-2-english",
	)
	viper.SetDefault("sentiment.polarity_threshold", 0.1)

	viper.SetDefault("rag.top_k", 2)

	viper.SetDefault("apps.chainreact.corpus_url", DefaultChainReactCorpusURL)
	viper.SetDefault("apps.stockprize.corpus_url", DefaultStockPrizeCorpusURL)
	viper.SetDefault("apps.stockprize.forecast_periods", 12)

	viper.SetDefault("session.ttl", 2*time.Hour)
	viper.SetDefault("session.sweep_interval", time.Minute)

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.max_upload_mb", 10)

	viper.SetDefault("log.level", "info")
}

// LoadConfig loads the config file and ENV variables into a Config struct.
// A missing config file is not an error when no explicit path was given;
// the defaults are used instead.
func LoadConfig(configFile string) (*Config, error) {
	setDefaults()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
	}

	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("LLMDEMOS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
		log.Debug("no config file found, using defaults")
	}

	// Environment variables take precedence over config file
	loadDotEnv()

	err := viper.BindEnv("llm.openai_api_key", "LLMDEMOS_OPENAI_API_KEY", "OPENAI_API_KEY")
	if err != nil {
		log.Fatalf("Error binding environment variable: %s", err)
	}
	err = viper.BindEnv("sentiment.huggingface_token", "LLMDEMOS_HUGGINGFACE_TOKEN", "HF_TOKEN")
	if err != nil {
		log.Fatalf("Error binding environment variable: %s", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadDotEnv loads environment variables from .env file
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Debug(".env file not found or unable to load")
	}
}

// SetLogLevel sets the log level based on the config file. Defaults to INFO if not set or invalid
func SetLogLevel(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	internal.SetLogLevel(level)
	log.Info("Log level set to: ", level)
}
