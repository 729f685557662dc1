package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/interview-prep/internal/documents"
	"github.com/jonathan/interview-prep/internal/interview"
	"github.com/jonathan/interview-prep/internal/server/middleware"
	"github.com/jonathan/interview-prep/internal/types"
)

// TestResponse reports whether the provider credential is configured.
type TestResponse struct {
	Status       string `json:"status"`
	HasOpenAIKey bool   `json:"hasOpenAIKey"`
	Provider     string `json:"provider"`
	Message      string `json:"message"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

// QuestionCount reports how many questions of each kind were requested.
type QuestionCount struct {
	MCQ       int `json:"mcq"`
	Cultural  int `json:"cultural"`
	OpenEnded int `json:"openEnded"`
}

// GenerateMetadata describes the context a question set was generated from.
type GenerateMetadata struct {
	CompanyInfo   string        `json:"companyInfo"`
	JobInfo       string        `json:"jobInfo"`
	QuestionCount QuestionCount `json:"questionCount"`
	RequestID     string        `json:"requestId,omitempty"`
}

// GenerateResponse is returned by generate-questions.
type GenerateResponse struct {
	Success   bool               `json:"success"`
	Questions *types.QuestionSet `json:"questions"`
	Metadata  GenerateMetadata   `json:"metadata"`
}

// EvaluateResponse is returned by evaluate-answers.
type EvaluateResponse struct {
	Success    bool              `json:"success"`
	Evaluation *types.Evaluation `json:"evaluation"`
}

// ResumeTextResponse is returned by resume/extract.
type ResumeTextResponse struct {
	Success    bool   `json:"success"`
	Text       string `json:"text"`
	Characters int    `json:"characters"`
	Format     string `json:"format"`
}

// handleTest reports whether the model credential is present.
func (s *Server) handleTest(w http.ResponseWriter, _ *http.Request) {
	hasKey := s.service.HasAPIKey()
	message := "API key is missing"
	if hasKey {
		message = "API key is configured"
	}
	s.jsonResponse(w, http.StatusOK, TestResponse{
		Status:       "ok",
		HasOpenAIKey: hasKey,
		Provider:     string(s.service.Provider()),
		Message:      message,
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   ServiceName,
	})
}

// handleGenerateQuestions scrapes the supplied context and generates a question set.
func (s *Server) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var input types.SetupInput
	if !s.decodeJSON(w, r, &input) {
		return
	}
	if err := input.Validate(); err != nil {
		s.inputError(w, err)
		return
	}

	ctx := r.Context()
	requestID := middleware.RequestIDFrom(ctx)
	logger := s.logger.With(zap.String("request_id", requestID))

	companyInfo, jobInfo := s.service.PrepareContext(ctx, input)
	logger.Info("generating questions",
		zap.Int("open_ended", input.Count()),
		zap.Int("company_chars", len(companyInfo)),
		zap.Int("job_chars", len(jobInfo)))

	questions, err := s.service.GenerateQuestions(ctx, interview.GenerateParams{
		Resume:         input.Resume,
		CompanyInfo:    companyInfo,
		JobInfo:        jobInfo,
		OpenEndedCount: input.Count(),
	})
	if err != nil {
		logger.Error("question generation failed", zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), "Failed to generate questions", err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, GenerateResponse{
		Success:   true,
		Questions: questions,
		Metadata: GenerateMetadata{
			CompanyInfo: interview.Availability(companyInfo),
			JobInfo:     interview.Availability(jobInfo),
			QuestionCount: QuestionCount{
				MCQ:       types.MultipleChoiceCount,
				Cultural:  types.CulturalCount,
				OpenEnded: input.Count(),
			},
			RequestID: requestID,
		},
	})
}

// handleEvaluateAnswers scores a completed interview.
func (s *Server) handleEvaluateAnswers(w http.ResponseWriter, r *http.Request) {
	var req types.EvaluateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.inputError(w, err)
		return
	}

	evaluation, err := s.service.EvaluateAnswers(r.Context(), interview.EvaluateParams{
		Resume:      req.Resume,
		Questions:   req.Questions,
		Answers:     req.Answers,
		CompanyInfo: req.CompanyInfo,
		JobInfo:     req.JobInfo,
	})
	if err != nil {
		s.logger.Error("answer evaluation failed",
			zap.String("request_id", middleware.RequestIDFrom(r.Context())), zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), "Failed to evaluate answers", err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, EvaluateResponse{Success: true, Evaluation: evaluation})
}

// handleResumeExtract returns the plain text of an uploaded résumé document.
func (s *Server) handleResumeExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, documents.MaxSize+(1<<20))
	if err := r.ParseMultipartForm(documents.MaxSize); err != nil {
		status := http.StatusBadRequest
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			status = http.StatusRequestEntityTooLarge
		}
		s.errorResponse(w, status, "Invalid upload", err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Resume file is required", "")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, documents.MaxSize+1))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read upload", err.Error())
		return
	}

	format, err := documents.DetectFormat(header.Filename, header.Header.Get("Content-Type"), data)
	if err == nil {
		var text string
		text, err = documents.ExtractText(format, data)
		if err == nil {
			s.jsonResponse(w, http.StatusOK, ResumeTextResponse{
				Success:    true,
				Text:       text,
				Characters: utf8.RuneCountInString(text),
				Format:     string(format),
			})
			return
		}
	}

	s.logger.Warn("resume extraction failed", zap.String("filename", header.Filename), zap.Error(err))
	s.errorResponse(w, HTTPStatus(err), "Failed to extract resume text", err.Error())
}

// decodeJSON reads a bounded JSON body into v, writing a 400 on failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		status := http.StatusBadRequest
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			status = http.StatusRequestEntityTooLarge
		}
		s.errorResponse(w, status, "Invalid request body", err.Error())
		return false
	}
	return true
}

func (s *Server) inputError(w http.ResponseWriter, err error) {
	var inputErr *types.InputError
	if errors.As(err, &inputErr) {
		s.errorResponse(w, http.StatusBadRequest, inputErr.Message, "")
		return
	}
	s.errorResponse(w, HTTPStatus(err), err.Error(), "")
}
