package generator

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/agolabs/architect/internal/blueprint"
	"github.com/agolabs/architect/internal/framework"
	"github.com/agolabs/architect/internal/logging"
	"github.com/agolabs/architect/internal/version"
)

const (
	// DefaultModel is the Gemini model used when none is configured
	DefaultModel = "gemini-3-flash-preview"
	// DefaultThinkingBudget is the token budget for model reasoning
	DefaultThinkingBudget int32 = 4096
)

// ErrEmptyKeyword is returned for blank keywords.
var ErrEmptyKeyword = errors.New("keyword must not be empty")

// Models is the subset of genai.Models the engine needs.
type Models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config holds engine settings
type Config struct {
	APIKey         string
	Model          string
	ThinkingBudget int32         // 0 disables the thinking config
	Timeout        time.Duration // 0 leaves the call bounded only by ctx
}

// Engine generates blueprints
type Engine struct {
	models Models
	config Config
}

// New creates an engine backed by the Gemini API
func New(ctx context.Context, cfg Config) (*Engine, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, NewConfigError("API key is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			Headers: http.Header{"User-Agent": []string{version.UserAgent()}},
		},
	})
	if err != nil {
		return nil, &Error{Kind: KindConfig, Message: "failed to create Gemini client", Err: err}
	}

	return NewWithModels(client.Models, cfg), nil
}

// NewWithModels creates an engine over an existing Models implementation
func NewWithModels(models Models, cfg Config) *Engine {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Engine{models: models, config: cfg}
}

// Model returns the configured model name
func (e *Engine) Model() string {
	return e.config.Model
}

func (e *Engine) requestConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SystemInstruction}}},
		ResponseMIMEType:  "application/json",
		ResponseSchema:    ResponseSchema(),
	}
	if e.config.ThinkingBudget > 0 {
		budget := e.config.ThinkingBudget
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: &budget}
	}
	return cfg
}

// Generate makes exactly one API call and decodes the response. Unknown
// framework IDs fall back to the default framework.
func (e *Engine) Generate(ctx context.Context, keyword string, id framework.ID) (*blueprint.Blueprint, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, &Error{Kind: KindInput, Message: "keyword is required", Err: ErrEmptyKeyword}
	}

	fw := framework.Resolve(id)
	requestID := uuid.NewString()
	start := time.Now()

	bp, err := e.generate(ctx, requestID, keyword, fw)
	logging.LogGeneration(requestID, keyword, string(fw.ID), time.Since(start), err)
	return bp, err
}

func (e *Engine) generate(ctx context.Context, requestID, keyword string, fw framework.Framework) (*blueprint.Blueprint, error) {
	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	prompt := BuildPrompt(keyword, fw)
	logging.Debug("Sending generation request",
		zap.String("request_id", requestID),
		zap.String("model", e.config.Model),
		zap.Int("prompt_len", len(prompt)),
	)

	resp, err := e.models.GenerateContent(ctx, e.config.Model, genai.Text(prompt), e.requestConfig())
	if err != nil {
		return nil, NewAPIError(requestID, err)
	}

	text := ""
	if resp != nil {
		text = resp.Text()
	}
	if text == "" {
		return nil, NewEmptyResponseError(requestID)
	}

	bp, err := blueprint.Decode([]byte(text), keyword)
	if err != nil {
		logging.Debug("Rejected response", zap.String("request_id", requestID), zap.String("raw", text))
		return nil, NewMalformedError(requestID, err)
	}
	return bp, nil
}
