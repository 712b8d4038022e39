package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/contract-cli/internal/extract"
	"github.com/sells-group/contract-cli/internal/llm"
	"github.com/sells-group/contract-cli/internal/pdftext"
	"github.com/sells-group/contract-cli/internal/resilience"
	"github.com/sells-group/contract-cli/internal/store"
	"github.com/sells-group/contract-cli/pkg/mistral"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite", "":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "contracts.db"
		}
		st, err := store.NewSQLite(dsn)
		if err != nil {
			return nil, err
		}
		if err := st.Migrate(ctx); err != nil {
			st.Close()
			return nil, err
		}
		return st, nil
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initChat() (*llm.Caller, error) {
	model := cfg.LLM.Model
	if model == "" {
		switch cfg.LLM.Provider {
		case "anthropic":
			model = cfg.Anthropic.Model
		default:
			model = cfg.Mistral.Model
		}
	}

	return llm.New(llm.Options{
		Provider:          cfg.LLM.Provider,
		Model:             model,
		RequestTimeout:    time.Duration(cfg.LLM.RequestTimeoutSecs) * time.Second,
		RequestsPerSecond: cfg.LLM.RequestsPerSecond,
		Retry: resilience.FromConfig(
			cfg.LLM.MaxRetries,
			cfg.LLM.RetryBackoffMs,
			cfg.LLM.RetryMaxBackoffMs,
		),
		MistralKey:     cfg.Mistral.Key,
		MistralBaseURL: cfg.Mistral.BaseURL,
		AnthropicKey:   cfg.Anthropic.Key,
	})
}

func initProcessor(useFewShot bool) (*extract.Processor, error) {
	chat, err := initChat()
	if err != nil {
		return nil, err
	}

	extractor, err := pdftext.NewExtractor(pdftext.Config{
		PdfToTextPath: cfg.PDFText.PdfToTextPath,
		PdfToTextRaw:  cfg.PDFText.Raw,
	})
	if err != nil {
		return nil, err
	}

	return extract.NewProcessor(chat, extractor, extract.ProcessorOptions{
		ChunkSize:    cfg.Batch.ChunkSize,
		ChunkOverlap: cfg.Batch.ChunkOverlap,
		UseFewShot:   useFewShot,
	})
}

func initMistral() (mistral.Client, error) {
	if cfg.Mistral.Key == "" {
		return nil, eris.New("mistral API key is required (CONTRACT_MISTRAL_KEY)")
	}
	opts := []mistral.Option{
		mistral.WithModel(cfg.Mistral.Model),
		mistral.WithEmbedModel(cfg.Mistral.EmbedModel),
	}
	if cfg.Mistral.BaseURL != "" {
		opts = append(opts, mistral.WithBaseURL(cfg.Mistral.BaseURL))
	}
	return mistral.NewClient(cfg.Mistral.Key, opts...), nil
}
