package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/govmind/decisions-api/pkg/app/dataset"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/sirupsen/logrus"
)

const (
	DefaultChatModel = "gpt-4o"

	// sampleRows bounds how many records are inlined into the prompt; the
	// model sees the schema and a sample, not the whole table.
	sampleRows = 5

	defaultRequestTimeout = 120 * time.Second
)

type Config struct {
	APIKey         string
	Model          string
	RequestTimeout time.Duration
	BaseURL        string
}

// Engine answers natural-language questions about the loaded dataset by
// prompting a chat model with the dataset's schema and a sample of records.
// Questions and answers may be in Hebrew or English.
type Engine struct {
	client openai.Client
	model  string
	loader *dataset.Loader
	logger *logrus.Logger
}

func NewEngine(cfg Config, loader *dataset.Loader, logger *logrus.Logger) (*Engine, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("analysis engine: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultChatModel
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.RequestTimeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Engine{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
		loader: loader,
		logger: logger,
	}, nil
}

// Ready reports whether a non-empty dataset snapshot is available to answer
// questions against.
func (e *Engine) Ready() bool {
	return !e.loader.Current().Empty()
}

func (e *Engine) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("question is empty")
	}

	snapshot := e.loader.Current()
	if snapshot.Empty() {
		return "", fmt.Errorf("dataset not loaded")
	}

	resp, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: e.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(e.systemPrompt(snapshot)),
			openai.UserMessage(question),
		},
	})
	if err != nil {
		e.logger.WithError(err).Error("chat completion request failed")
		return "", fmt.Errorf("analysis request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completions returned")
	}

	return resp.Choices[0].Message.Content, nil
}

func (e *Engine) systemPrompt(snapshot *dataset.Snapshot) string {
	var b strings.Builder
	b.WriteString("You are analyzing Israeli government decisions data. ")
	b.WriteString("The data may contain Hebrew text; answer in the language of the question.\n\n")
	fmt.Fprintf(&b, "Total records in dataset: %d\n", len(snapshot.Decisions))
	fmt.Fprintf(&b, "Available columns: %s\n\n", strings.Join(dataset.Columns(), ", "))

	b.WriteString("Sample records:\n")
	n := len(snapshot.Decisions)
	if n > sampleRows {
		n = sampleRows
	}
	for _, d := range snapshot.Decisions[:n] {
		if row, err := json.Marshal(d); err == nil {
			b.Write(row)
			b.WriteByte('\n')
		}
	}

	b.WriteString("\nAnswer clearly and concisely based only on this dataset.")
	return b.String()
}
