package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Mistral   MistralConfig   `yaml:"mistral" mapstructure:"mistral"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	PDFText   PDFTextConfig   `yaml:"pdftext" mapstructure:"pdftext"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Batch     BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Export    ExportConfig    `yaml:"export" mapstructure:"export"`
	Search    SearchConfig    `yaml:"search" mapstructure:"search"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// LLMConfig selects the chat provider and the shared request policy applied
// to every model call regardless of provider.
type LLMConfig struct {
	Provider           string  `yaml:"provider" mapstructure:"provider"`
	Model              string  `yaml:"model" mapstructure:"model"`
	RequestTimeoutSecs int     `yaml:"request_timeout_secs" mapstructure:"request_timeout_secs"`
	RequestsPerSecond  float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	MaxRetries         int     `yaml:"max_retries" mapstructure:"max_retries"`
	RetryBackoffMs     int     `yaml:"retry_backoff_ms" mapstructure:"retry_backoff_ms"`
	RetryMaxBackoffMs  int     `yaml:"retry_max_backoff_ms" mapstructure:"retry_max_backoff_ms"`
}

// MistralConfig holds Mistral API settings.
type MistralConfig struct {
	Key        string `yaml:"key" mapstructure:"key"`
	BaseURL    string `yaml:"base_url" mapstructure:"base_url"`
	Model      string `yaml:"model" mapstructure:"model"`
	EmbedModel string `yaml:"embed_model" mapstructure:"embed_model"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// PDFTextConfig configures PDF text extraction.
type PDFTextConfig struct {
	PdfToTextPath string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
	Raw           bool   `yaml:"raw" mapstructure:"raw"`
}

// StoreConfig configures the result database.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// BatchConfig configures batch contract processing.
type BatchConfig struct {
	InputDir     string `yaml:"input_dir" mapstructure:"input_dir"`
	MaxContracts int    `yaml:"max_contracts" mapstructure:"max_contracts"`
	Concurrency  int    `yaml:"concurrency" mapstructure:"concurrency"`
	ChunkSize    int    `yaml:"chunk_size" mapstructure:"chunk_size"`
	ChunkOverlap int    `yaml:"chunk_overlap" mapstructure:"chunk_overlap"`
	FewShot      bool   `yaml:"few_shot" mapstructure:"few_shot"`
}

// ExportConfig configures result exports.
type ExportConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
	Format    string `yaml:"format" mapstructure:"format"`
}

// SearchConfig configures semantic clause search.
type SearchConfig struct {
	TopK int `yaml:"top_k" mapstructure:"top_k"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Validate checks the settings a command mode depends on. Modes: "analyze"
// runs the extraction pipeline, "search" embeds queries against stored
// clauses, "runs" only reads the store.
func (c *Config) Validate(mode string) error {
	var missing []string

	checkLLMKey := func() {
		switch c.LLM.Provider {
		case "", "mistral":
			if c.Mistral.Key == "" {
				missing = append(missing, "mistral.key is required")
			}
		case "anthropic":
			if c.Anthropic.Key == "" {
				missing = append(missing, "anthropic.key is required")
			}
		default:
			missing = append(missing, "llm.provider must be mistral or anthropic")
		}
	}

	switch mode {
	case "analyze":
		checkLLMKey()
		if c.Store.DatabaseURL == "" {
			missing = append(missing, "store.database_url is required")
		}
		if c.Batch.Concurrency < 1 || c.Batch.Concurrency > 16 {
			missing = append(missing, "batch.concurrency must be between 1 and 16")
		}
		if c.Batch.ChunkSize <= 0 || c.Batch.ChunkOverlap < 0 || c.Batch.ChunkOverlap >= c.Batch.ChunkSize {
			missing = append(missing, "batch.chunk_overlap must be >= 0 and < batch.chunk_size")
		}
		switch c.Export.Format {
		case "csv", "json", "both":
		default:
			missing = append(missing, "export.format must be csv, json, or both")
		}
	case "search":
		if c.Mistral.Key == "" {
			missing = append(missing, "mistral.key is required")
		}
		if c.Store.DatabaseURL == "" {
			missing = append(missing, "store.database_url is required")
		}
		if c.Search.TopK < 1 {
			missing = append(missing, "search.top_k must be > 0")
		}
	case "runs":
		if c.Store.DatabaseURL == "" {
			missing = append(missing, "store.database_url is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(missing) > 0 {
		return eris.Errorf("config: invalid configuration:\n  - %s", strings.Join(missing, "\n  - "))
	}
	return nil
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CONTRACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Secret and model keys default to empty so viper knows them;
	// AutomaticEnv only resolves keys already registered via a default, the
	// config file, or BindEnv.
	v.SetDefault("llm.provider", "mistral")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.request_timeout_secs", 120)
	v.SetDefault("llm.requests_per_second", 1.0)
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_backoff_ms", 2000)
	v.SetDefault("llm.retry_max_backoff_ms", 10000)
	v.SetDefault("mistral.key", "")
	v.SetDefault("mistral.base_url", "https://api.mistral.ai/v1")
	v.SetDefault("mistral.model", "mistral-small-latest")
	v.SetDefault("mistral.embed_model", "mistral-embed")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("pdftext.pdftotext_path", "pdftotext")
	v.SetDefault("pdftext.raw", false)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "contracts.db")
	v.SetDefault("batch.input_dir", "data/raw")
	v.SetDefault("batch.max_contracts", 50)
	v.SetDefault("batch.concurrency", 1)
	v.SetDefault("batch.chunk_size", 10000)
	v.SetDefault("batch.chunk_overlap", 1000)
	v.SetDefault("batch.few_shot", true)
	v.SetDefault("export.output_dir", "data/results")
	v.SetDefault("export.format", "csv")
	v.SetDefault("search.top_k", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
