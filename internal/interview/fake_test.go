package interview

import (
	"context"
	"errors"
	"sync"

	"github.com/jonathan/interview-prep/internal/ingestion"
	"github.com/jonathan/interview-prep/internal/llm"
)

type fakeClient struct {
	mu       sync.Mutex
	response string
	err      error
	requests []llm.Request
	closed   bool
}

func (f *fakeClient) Complete(_ context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.response, f.err
}

func (f *fakeClient) Provider() llm.Provider { return llm.ProviderOpenAI }
func (f *fakeClient) Model() string          { return "fake-model" }

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func (f *fakeClient) lastRequest() llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

type fakeScraper struct {
	company    string
	companyErr error
	job        string
	jobErr     error
	companyURL string
	jobURL     string
	mu         sync.Mutex
}

func (f *fakeScraper) ScrapeCompany(_ context.Context, url string) (string, *ingestion.Metadata, error) {
	f.mu.Lock()
	f.companyURL = url
	f.mu.Unlock()
	if f.companyErr != nil {
		return "", nil, f.companyErr
	}
	return f.company, ingestion.NewMetadata(f.company, url, ingestion.KindCompany), nil
}

func (f *fakeScraper) ExtractJob(_ context.Context, url string) (string, *ingestion.Metadata, error) {
	f.mu.Lock()
	f.jobURL = url
	f.mu.Unlock()
	if f.jobErr != nil {
		return "", nil, f.jobErr
	}
	return f.job, ingestion.NewMetadata(f.job, url, ingestion.KindJob), nil
}

var errUnreachable = errors.New("dial tcp: connection refused")

const validQuestionsJSON = `{
  "multipleChoice": [
    {"question": "What does Acme sell?", "options": ["Rockets", "Anvils", "Both", "Neither"], "correctAnswer": "Both", "explanation": "Catalog", "category": "company"},
    {"question": "Who competes with Acme?", "options": ["Ajax", "Nobody"], "correctAnswer": "Ajax", "explanation": "Market", "category": "market"},
    {"question": "What is a goroutine?", "options": ["Thread", "Lightweight thread"], "correctAnswer": "Lightweight thread", "explanation": "Runtime", "category": "technical"}
  ],
  "cultural": [
    {"question": "Which value resonates?", "context": "Values page", "expectedPoints": ["Ownership"], "category": "values"},
    {"question": "How do you collaborate?", "context": "Remote team", "expectedPoints": ["Async"], "category": "culture"},
    {"question": "Thoughts on the launch?", "context": "News", "expectedPoints": ["Impact"], "category": "news"}
  ],
  "openEnded": [
    {"question": "Design a rate limiter", "context": "Backend role", "evaluationCriteria": ["Correctness"], "category": "case"},
    {"question": "Tell us about an outage", "context": "On-call", "evaluationCriteria": ["Ownership"], "category": "behavioral"}
  ]
}`

const validEvaluationJSON = `{
  "overallScore": 72,
  "areasForImprovement": [
    {"area": "Depth", "description": "More detail", "priority": "high", "suggestions": ["Use numbers"]}
  ],
  "strengths": [
    {"area": "Clarity", "description": "Clear answers", "examples": ["Rate limiter design"]}
  ],
  "questionEvaluations": [
    {"questionId": "mcq-0", "score": 8, "feedback": "Correct", "strengths": ["Accurate"], "improvements": [], "category": "mcq"},
    {"questionId": 1, "score": 0, "feedback": "No answer given", "strengths": [], "improvements": ["Answer it"], "category": "mcq"}
  ],
  "summary": {"totalQuestions": 8, "questionsNeedingRefinement": 2, "overallAssessment": "Solid", "recommendations": ["Practice"]}
}`
