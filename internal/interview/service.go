// Package interview generates personalized interview questions and evaluates
// the candidate's answers with a language model.
package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/interview-prep/internal/ingestion"
	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/logging"
	"github.com/jonathan/interview-prep/internal/prompts"
	"github.com/jonathan/interview-prep/internal/rendering"
	"github.com/jonathan/interview-prep/internal/schemas"
	"github.com/jonathan/interview-prep/internal/types"
)

// Sampling settings per operation.
const (
	GenerateTemperature = 0.7
	GenerateMaxTokens   = 4000
	EvaluateTemperature = 0.5
	EvaluateMaxTokens   = 3000
)

// NotProvided stands in for empty company or job context in prompts.
const NotProvided = "Not provided"

// ClientFactory creates a language model client.
type ClientFactory func(ctx context.Context, config *llm.Config, apiKey string) (llm.Client, error)

// Scraper extracts company and job text from URLs.
type Scraper interface {
	ScrapeCompany(ctx context.Context, url string) (string, *ingestion.Metadata, error)
	ExtractJob(ctx context.Context, url string) (string, *ingestion.Metadata, error)
}

// Service runs question generation and answer evaluation.
type Service struct {
	llmConfig  *llm.Config
	apiKey     string
	newClient  ClientFactory
	scraper    Scraper
	sanitize   bool
	jsonMode   bool
	previewLen int
	logger     *zap.Logger

	mu     sync.Mutex
	client llm.Client
}

// Option configures a Service.
type Option func(*Service)

// WithLLMConfig sets the provider configuration and its credential.
func WithLLMConfig(config *llm.Config, apiKey string) Option {
	return func(s *Service) {
		if config != nil {
			s.llmConfig = config
		}
		s.apiKey = apiKey
	}
}

// WithClient uses client instead of creating one on first use.
func WithClient(client llm.Client) Option {
	return func(s *Service) {
		s.client = client
	}
}

// WithClientFactory replaces the function used to create the client.
func WithClientFactory(factory ClientFactory) Option {
	return func(s *Service) {
		if factory != nil {
			s.newClient = factory
		}
	}
}

// WithScraper sets the scraper used by PrepareContext.
func WithScraper(scraper Scraper) Option {
	return func(s *Service) {
		s.scraper = scraper
	}
}

// WithSanitize toggles markup sanitation of model output.
func WithSanitize(enabled bool) Option {
	return func(s *Service) {
		s.sanitize = enabled
	}
}

// WithJSONMode asks the provider for JSON-only output.
func WithJSONMode(enabled bool) Option {
	return func(s *Service) {
		s.jsonMode = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logging.OrNop(logger)
	}
}

// NewService creates a Service. The language model client is created lazily,
// so a missing credential is reported by the first call that needs it.
func NewService(opts ...Option) *Service {
	s := &Service{
		llmConfig:  llm.DefaultConfig(),
		newClient:  llm.NewClient,
		sanitize:   true,
		previewLen: logging.DefaultPreviewLength,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Provider returns the configured provider.
func (s *Service) Provider() llm.Provider {
	return s.llmConfig.Provider
}

// HasAPIKey reports whether a credential is configured.
func (s *Service) HasAPIKey() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client != nil || strings.TrimSpace(s.apiKey) != ""
}

// Close releases the language model client if one was created.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}

func (s *Service) llmClient(ctx context.Context) (llm.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}
	client, err := s.newClient(ctx, s.llmConfig, s.apiKey)
	if err != nil {
		return nil, err
	}
	s.client = client
	return client, nil
}

// GenerateParams is the input to GenerateQuestions. CompanyInfo and JobInfo
// may hold placeholder text when extraction failed.
type GenerateParams struct {
	Resume         string
	CompanyInfo    string
	JobInfo        string
	OpenEndedCount int
}

// GenerateQuestions asks the model for a question set with exactly
// OpenEndedCount open-ended questions.
func (s *Service) GenerateQuestions(ctx context.Context, params GenerateParams) (*types.QuestionSet, error) {
	if strings.TrimSpace(params.Resume) == "" {
		return nil, &types.InputError{Field: "resume", Message: "Resume is required"}
	}
	if params.OpenEndedCount < types.MinOpenEndedCount || params.OpenEndedCount > types.MaxOpenEndedCount {
		return nil, &types.InputError{
			Field:   "openEndedCount",
			Message: fmt.Sprintf("Open-ended questions must be between %d and %d", types.MinOpenEndedCount, types.MaxOpenEndedCount),
		}
	}

	prompt, err := prompts.Render(prompts.InterviewFile, prompts.GenerateQuestions, map[string]string{
		"Resume":         params.Resume,
		"CompanyInfo":    orNotProvided(params.CompanyInfo),
		"JobInfo":        orNotProvided(params.JobInfo),
		"OpenEndedCount": strconv.Itoa(params.OpenEndedCount),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build question prompt: %w", err)
	}
	system, err := prompts.Get(prompts.InterviewFile, prompts.GenerateQuestionsSystem)
	if err != nil {
		return nil, fmt.Errorf("failed to build question prompt: %w", err)
	}

	raw, err := s.complete(ctx, "generate_questions", llm.Request{
		System:      system,
		Prompt:      prompt,
		Temperature: GenerateTemperature,
		MaxTokens:   GenerateMaxTokens,
		JSON:        s.jsonMode,
	})
	if err != nil {
		return nil, err
	}

	var questions types.QuestionSet
	if err := s.normalize(raw, schemas.ValidateQuestionSet, &questions); err != nil {
		return nil, err
	}
	return &questions, nil
}

// EvaluateParams is the input to EvaluateAnswers. Answers may omit questions
// the candidate skipped.
type EvaluateParams struct {
	Resume      string
	Questions   *types.QuestionSet
	Answers     types.AnswerSet
	CompanyInfo string
	JobInfo     string
}

type questionsAndAnswers struct {
	Questions *types.QuestionSet `json:"questions"`
	Answers   types.AnswerSet    `json:"answers"`
}

// EvaluateAnswers asks the model to score the answers against the questions.
func (s *Service) EvaluateAnswers(ctx context.Context, params EvaluateParams) (*types.Evaluation, error) {
	if strings.TrimSpace(params.Resume) == "" || params.Questions == nil || params.Answers == nil {
		return nil, &types.InputError{Message: "Resume, questions, and answers are required"}
	}

	qa, err := json.MarshalIndent(questionsAndAnswers{
		Questions: params.Questions,
		Answers:   params.Answers,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode questions and answers: %w", err)
	}

	prompt, err := prompts.Render(prompts.InterviewFile, prompts.EvaluateAnswers, map[string]string{
		"Resume":              params.Resume,
		"CompanyInfo":         orNotProvided(params.CompanyInfo),
		"JobInfo":             orNotProvided(params.JobInfo),
		"QuestionsAndAnswers": string(qa),
		"TotalQuestions":      strconv.Itoa(params.Questions.Len()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build evaluation prompt: %w", err)
	}
	system, err := prompts.Get(prompts.InterviewFile, prompts.EvaluateAnswersSystem)
	if err != nil {
		return nil, fmt.Errorf("failed to build evaluation prompt: %w", err)
	}

	if missing := params.Answers.Unanswered(params.Questions.IDs()); len(missing) > 0 {
		s.logger.Debug("evaluating with unanswered questions", zap.Strings("question_ids", missing))
	}

	raw, err := s.complete(ctx, "evaluate_answers", llm.Request{
		System:      system,
		Prompt:      prompt,
		Temperature: EvaluateTemperature,
		MaxTokens:   EvaluateMaxTokens,
		JSON:        s.jsonMode,
	})
	if err != nil {
		return nil, err
	}

	var evaluation types.Evaluation
	if err := s.normalize(raw, schemas.ValidateEvaluation, &evaluation); err != nil {
		return nil, err
	}
	return &evaluation, nil
}

func (s *Service) complete(ctx context.Context, operation string, req llm.Request) (string, error) {
	client, err := s.llmClient(ctx)
	if err != nil {
		return "", err
	}

	logger := s.logger.With(logging.LLMFields(string(client.Provider()), client.Model())...).
		With(zap.String("operation", operation))
	logger.Debug("sending completion request", zap.Int("prompt_chars", len(req.Prompt)))

	start := time.Now()
	raw, err := client.Complete(ctx, req)
	if err != nil {
		logger.Warn("completion failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return "", err
	}

	logger.Debug("completion received",
		zap.Duration("elapsed", time.Since(start)),
		zap.String("response_preview", logging.TruncateForLog(raw, s.previewLen)),
	)
	return raw, nil
}

// normalize recovers JSON from raw model output, validates it, optionally
// strips markup from every string, and decodes it into out.
func (s *Service) normalize(raw string, validate func([]byte) error, out any) error {
	data, err := llm.ExtractJSON(raw)
	if err != nil {
		s.logger.Warn("model returned malformed output",
			zap.String("response_preview", logging.TruncateForLog(raw, s.previewLen)))
		return err
	}

	if err := validate(data); err != nil {
		return err
	}

	if s.sanitize {
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("%w: %v", llm.ErrMalformedOutput, err)
		}
		data, err = json.Marshal(rendering.DeepClean(generic))
		if err != nil {
			return fmt.Errorf("failed to encode sanitized output: %w", err)
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", llm.ErrMalformedOutput, err)
	}
	return nil
}

func orNotProvided(text string) string {
	if strings.TrimSpace(text) == "" {
		return NotProvided
	}
	return text
}
