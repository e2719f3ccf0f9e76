package services

import (
  "context"
  "errors"
  "fmt"
  "strings"
  "time"
  "unicode/utf16"

  "github.com/tmc/langchaingo/llms"
  "github.com/tmc/langchaingo/schema"
  "github.com/tmc/langchaingo/llms/openai"

  "github.com/asthmaai/asthmaai-backend/internal/logger"
)

const MedicalSystemPrompt = `You are an AI medical assistant specializing in asthma care. Your role is to:

1. Provide accurate, evidence-based information about asthma management
2. Help users understand their symptoms and potential triggers
3. Offer general guidance on asthma care and prevention
4. Explain common medications and treatments

Important disclaimers to include when appropriate:
- Clarify that you are an AI assistant, not a real doctor
- Recommend consulting healthcare providers for specific medical advice
- Emphasize that your responses are informational and not medical diagnoses
- Encourage seeking emergency care for severe symptoms

Always maintain a professional, caring tone while being clear about the limitations of AI medical advice.`

const (
  CompletionTemperature = 0.7
  CompletionMaxTokens = 500
  // MaxResponseLength is exclusive and counted in UTF-16 code units, so a
  // reply of exactly this length is rejected.
  MaxResponseLength = 2000

  guidelinesMessage = "Generated response did not meet medical content guidelines"
)

var disallowedPhrases = []string{
  "I am a doctor",
  "I diagnose",
}

// OpenAIError is the only error kind the gateway returns.
type OpenAIError struct {
  Message string
  Err     error
}

func (e *OpenAIError) Error() string {
  return e.Message
}

func (e *OpenAIError) Unwrap() error {
  return e.Err
}

// ChatModel is the slice of llms.Model the gateway needs.
type ChatModel interface {
  GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

type CompletionGateway interface {
  GetMedicalChatCompletion(ctx context.Context, userMessage string) (string, error)
}

type CompletionConfig struct {
  APIKey      string
  Model       string
  BaseURL     string
  Timeout     time.Duration
}

type completionGateway struct {
  log         *logger.Logger
  model       ChatModel
  timeout     time.Duration
}

func NewCompletionGateway(log *logger.Logger, cfg CompletionConfig) (CompletionGateway, error) {
  if strings.TrimSpace(cfg.APIKey) == "" {
    return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
  }
  opts := []openai.Option{
    openai.WithToken(cfg.APIKey),
  }
  if cfg.Model != "" {
    opts = append(opts, openai.WithModel(cfg.Model))
  }
  if cfg.BaseURL != "" {
    opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
  }
  client, err := openai.New(opts...)
  if err != nil {
    return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
  }
  return NewCompletionGatewayWithModel(log, client, cfg.Timeout), nil
}

// NewCompletionGatewayWithModel accepts any ChatModel; a zero timeout means no deadline.
func NewCompletionGatewayWithModel(log *logger.Logger, model ChatModel, timeout time.Duration) CompletionGateway {
  return &completionGateway{
    log:      log.With("service", "CompletionGateway"),
    model:    model,
    timeout:  timeout,
  }
}

func (cg *completionGateway) GetMedicalChatCompletion(ctx context.Context, userMessage string) (string, error) {
  //1) Bound the provider wait
  if cg.timeout > 0 {
    var cancel context.CancelFunc
    ctx, cancel = context.WithTimeout(ctx, cg.timeout)
    defer cancel()
  }

  //2) System instruction + user content
  messages := []llms.MessageContent{
    llms.TextParts(schema.ChatMessageTypeSystem, MedicalSystemPrompt),
    llms.TextParts(schema.ChatMessageTypeHuman, userMessage),
  }
  start := time.Now()
  resp, err := cg.model.GenerateContent(ctx, messages,
    llms.WithTemperature(CompletionTemperature),
    llms.WithMaxTokens(CompletionMaxTokens),
  )
  if err != nil {
    normalized := normalizeProviderError(ctx, err)
    cg.log.Warn("OpenAI completion failed", "error", err, "elapsed", time.Since(start))
    return "", normalized
  }

  //3) Validate, discarding anything non-compliant
  var text string
  if resp != nil && len(resp.Choices) > 0 && resp.Choices[0] != nil {
    text = resp.Choices[0].Content
  }
  if !ValidateMedicalResponse(text) {
    cg.log.Warn("Completion rejected by content guidelines", "length", len(text))
    return "", &OpenAIError{Message: guidelinesMessage}
  }
  cg.log.Info("OpenAI completion success", "length", len(text), "elapsed", time.Since(start))
  return text, nil
}

// ValidateMedicalResponse accepts non-empty text shorter than MaxResponseLength
// UTF-16 code units that contains none of the disallowed phrases.
func ValidateMedicalResponse(response string) bool {
  length := len(utf16.Encode([]rune(response)))
  if length == 0 || length >= MaxResponseLength {
    return false
  }
  for _, phrase := range disallowedPhrases {
    if strings.Contains(response, phrase) {
      return false
    }
  }
  return true
}

func normalizeProviderError(ctx context.Context, err error) *OpenAIError {
  var oe *OpenAIError
  if errors.As(err, &oe) {
    return oe
  }
  if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
    return &OpenAIError{Message: "Error communicating with OpenAI: request timed out", Err: err}
  }
  if msg := err.Error(); msg != "" {
    return &OpenAIError{Message: "Error communicating with OpenAI: " + msg, Err: err}
  }
  return &OpenAIError{Message: "An unexpected error occurred while processing your request", Err: err}
}
