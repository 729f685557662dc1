package interview

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/interview-prep/internal/ingestion"
	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/schemas"
	"github.com/jonathan/interview-prep/internal/types"
)

func TestGenerateQuestions_Success(t *testing.T) {
	client := &fakeClient{response: validQuestionsJSON}
	svc := NewService(WithClient(client), WithLogger(zap.NewNop()))

	qs, err := svc.GenerateQuestions(context.Background(), GenerateParams{
		Resume:         "Senior backend engineer, 5 years Go/Python",
		CompanyInfo:    "Company: Acme",
		JobInfo:        "Job Title: Backend Engineer",
		OpenEndedCount: 2,
	})
	require.NoError(t, err)
	assert.Len(t, qs.MultipleChoice, 3)
	assert.Len(t, qs.Cultural, 3)
	assert.Len(t, qs.OpenEnded, 2)
	assert.Equal(t, "Both", qs.MultipleChoice[0].CorrectAnswer)

	req := client.lastRequest()
	assert.InDelta(t, 0.7, req.Temperature, 0.001)
	assert.Equal(t, 4000, req.MaxTokens)
	assert.False(t, req.JSON)
	assert.NotEmpty(t, req.System)
	assert.Contains(t, req.Prompt, "Senior backend engineer, 5 years Go/Python")
	assert.Contains(t, req.Prompt, "Company: Acme")
	assert.Contains(t, req.Prompt, "Job Title: Backend Engineer")
	assert.Contains(t, req.Prompt, "Exactly 3 multiple-choice questions")
	assert.Contains(t, req.Prompt, "Exactly 2 open-ended questions")
	assert.Contains(t, req.Prompt, "company|market|technical")
	assert.Contains(t, req.Prompt, "values|culture|news")
	assert.Contains(t, req.Prompt, "technical|experience|behavioral|case")
	assert.Contains(t, req.Prompt, "Return only valid JSON")
	assert.NotContains(t, req.Prompt, "{{.")
}

func TestGenerateQuestions_UnavailablePlaceholdersStillSucceed(t *testing.T) {
	client := &fakeClient{response: validQuestionsJSON}
	svc := NewService(WithClient(client))

	_, err := svc.GenerateQuestions(context.Background(), GenerateParams{
		Resume:         "Senior backend engineer, 5 years Go/Python",
		CompanyInfo:    ingestion.CompanyInfoUnavailable,
		OpenEndedCount: 2,
	})
	require.NoError(t, err)

	prompt := client.lastRequest().Prompt
	assert.Contains(t, prompt, "Company information unavailable")
	assert.Contains(t, prompt, "JOB DESCRIPTION:\n"+NotProvided)
}

func TestGenerateQuestions_FencedOutput(t *testing.T) {
	client := &fakeClient{response: "Here you go:\n```json\n" + validQuestionsJSON + "\n```"}
	svc := NewService(WithClient(client))

	qs, err := svc.GenerateQuestions(context.Background(), GenerateParams{Resume: "r", OpenEndedCount: 2})
	require.NoError(t, err)
	assert.Equal(t, 8, qs.Len())
}

func TestGenerateQuestions_JSONMode(t *testing.T) {
	client := &fakeClient{response: validQuestionsJSON}
	svc := NewService(WithClient(client), WithJSONMode(true))

	_, err := svc.GenerateQuestions(context.Background(), GenerateParams{Resume: "r", OpenEndedCount: 2})
	require.NoError(t, err)
	assert.True(t, client.lastRequest().JSON)
}

func TestGenerateQuestions_InvalidInput(t *testing.T) {
	client := &fakeClient{response: validQuestionsJSON}
	svc := NewService(WithClient(client))

	for _, params := range []GenerateParams{
		{Resume: " ", OpenEndedCount: 3},
		{Resume: "r", OpenEndedCount: 0},
		{Resume: "r", OpenEndedCount: 21},
	} {
		_, err := svc.GenerateQuestions(context.Background(), params)
		var inputErr *types.InputError
		require.ErrorAs(t, err, &inputErr)
	}
	assert.Empty(t, client.requests)
}

func TestGenerateQuestions_MalformedOutput(t *testing.T) {
	svc := NewService(WithClient(&fakeClient{response: "I cannot help with that."}))

	_, err := svc.GenerateQuestions(context.Background(), GenerateParams{Resume: "r", OpenEndedCount: 1})
	assert.ErrorIs(t, err, llm.ErrMalformedOutput)
}

func TestGenerateQuestions_SchemaViolation(t *testing.T) {
	svc := NewService(WithClient(&fakeClient{response: `{"multipleChoice": [], "cultural": [], "openEnded": []}`}))

	_, err := svc.GenerateQuestions(context.Background(), GenerateParams{Resume: "r", OpenEndedCount: 1})
	var verr *schemas.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Errors)
}

func TestGenerateQuestions_UpstreamError(t *testing.T) {
	upstream := &llm.Error{Kind: llm.KindQuota, Provider: llm.ProviderOpenAI}
	svc := NewService(WithClient(&fakeClient{err: upstream}))

	_, err := svc.GenerateQuestions(context.Background(), GenerateParams{Resume: "r", OpenEndedCount: 1})
	assert.True(t, llm.IsKind(err, llm.KindQuota))
}

func TestGenerateQuestions_Sanitizes(t *testing.T) {
	dirty := `{
  "multipleChoice": [
    {"question": "<b>Bold</b> move?", "options": ["javascript:alert(1)", "B"], "correctAnswer": "B", "category": "company"},
    {"question": "q2", "options": ["A"], "correctAnswer": "A", "category": "market"},
    {"question": "q3", "options": ["A"], "correctAnswer": "A", "category": "technical"}
  ],
  "cultural": [{"question": "c1"}, {"question": "c2"}, {"question": "c3"}],
  "openEnded": [{"question": "  <script>o1</script>  "}]
}`
	qs, err := NewService(WithClient(&fakeClient{response: dirty})).
		GenerateQuestions(context.Background(), GenerateParams{Resume: "r", OpenEndedCount: 1})
	require.NoError(t, err)
	assert.Equal(t, "bBold/b move?", qs.MultipleChoice[0].Question)
	assert.Equal(t, "alert(1)", qs.MultipleChoice[0].Options[0])
	assert.Equal(t, "scripto1/script", qs.OpenEnded[0].Question)

	raw, err := NewService(WithClient(&fakeClient{response: dirty}), WithSanitize(false)).
		GenerateQuestions(context.Background(), GenerateParams{Resume: "r", OpenEndedCount: 1})
	require.NoError(t, err)
	assert.Equal(t, "<b>Bold</b> move?", raw.MultipleChoice[0].Question)
}

func TestEvaluateAnswers_MissingAnswerStillRuns(t *testing.T) {
	client := &fakeClient{response: validEvaluationJSON}
	svc := NewService(WithClient(client))

	var questions types.QuestionSet
	require.NoError(t, svc.normalize(validQuestionsJSON, schemas.ValidateQuestionSet, &questions))

	answers := types.AnswerSet{
		"mcq-0":       "Both",
		"cultural-0":  "Ownership",
		"openEnded-0": "Token bucket per client",
	}

	eval, err := svc.EvaluateAnswers(context.Background(), EvaluateParams{
		Resume:    "Senior backend engineer",
		Questions: &questions,
		Answers:   answers,
	})
	require.NoError(t, err)
	assert.InDelta(t, 72, eval.OverallScore, 0.001)
	require.Len(t, eval.QuestionEvaluations, 2)
	assert.Equal(t, types.QuestionRef("mcq-0"), eval.QuestionEvaluations[0].QuestionID)
	assert.Equal(t, types.QuestionRef("1"), eval.QuestionEvaluations[1].QuestionID)

	req := client.lastRequest()
	assert.InDelta(t, 0.5, req.Temperature, 0.001)
	assert.Equal(t, 3000, req.MaxTokens)
	assert.Contains(t, req.Prompt, `"mcq-0": "Both"`)
	assert.NotContains(t, req.Prompt, `"mcq-1"`)
	assert.Contains(t, req.Prompt, `"totalQuestions": 8`)
	assert.Contains(t, req.Prompt, "0 to 100")
	assert.Contains(t, req.Prompt, "COMPANY INFORMATION:\n"+NotProvided)
}

func TestEvaluateAnswers_EmptyAnswers(t *testing.T) {
	client := &fakeClient{response: validEvaluationJSON}
	svc := NewService(WithClient(client))

	_, err := svc.EvaluateAnswers(context.Background(), EvaluateParams{
		Resume:    "r",
		Questions: &types.QuestionSet{},
		Answers:   types.AnswerSet{},
	})
	require.NoError(t, err)
	assert.Contains(t, client.lastRequest().Prompt, `"answers": {}`)
}

func TestEvaluateAnswers_InvalidInput(t *testing.T) {
	svc := NewService(WithClient(&fakeClient{response: validEvaluationJSON}))

	for _, params := range []EvaluateParams{
		{Questions: &types.QuestionSet{}, Answers: types.AnswerSet{}},
		{Resume: "r", Answers: types.AnswerSet{}},
		{Resume: "r", Questions: &types.QuestionSet{}},
	} {
		_, err := svc.EvaluateAnswers(context.Background(), params)
		var inputErr *types.InputError
		assert.ErrorAs(t, err, &inputErr)
	}
}

func TestEvaluateAnswers_SchemaViolation(t *testing.T) {
	svc := NewService(WithClient(&fakeClient{response: `{"overallScore": 50}`}))

	_, err := svc.EvaluateAnswers(context.Background(), EvaluateParams{
		Resume: "r", Questions: &types.QuestionSet{}, Answers: types.AnswerSet{},
	})
	var verr *schemas.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestService_MissingKeyReportedPerCall(t *testing.T) {
	svc := NewService(WithLLMConfig(llm.DefaultConfig(), ""))
	assert.False(t, svc.HasAPIKey())

	for range 2 {
		_, err := svc.GenerateQuestions(context.Background(), GenerateParams{Resume: "r", OpenEndedCount: 1})
		require.Error(t, err)
		assert.True(t, llm.IsKind(err, llm.KindConfig))
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	}
}

func TestService_ClientCreatedOnceAndCached(t *testing.T) {
	client := &fakeClient{response: validQuestionsJSON}
	calls := 0
	factory := func(_ context.Context, config *llm.Config, apiKey string) (llm.Client, error) {
		calls++
		assert.Equal(t, llm.ProviderGemini, config.Provider)
		assert.Equal(t, "key", apiKey)
		return client, nil
	}
	svc := NewService(WithLLMConfig(&llm.Config{Provider: llm.ProviderGemini}, "key"), WithClientFactory(factory))
	assert.True(t, svc.HasAPIKey())
	assert.Equal(t, llm.ProviderGemini, svc.Provider())

	for range 3 {
		_, err := svc.GenerateQuestions(context.Background(), GenerateParams{Resume: "r", OpenEndedCount: 2})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls)

	require.NoError(t, svc.Close())
	assert.True(t, client.closed)
}

func TestService_HasAPIKeyDuringClientCreation(t *testing.T) {
	client := &fakeClient{response: validQuestionsJSON}
	factory := func(context.Context, *llm.Config, string) (llm.Client, error) {
		return client, nil
	}
	svc := NewService(WithLLMConfig(llm.DefaultConfig(), "key"), WithClientFactory(factory))

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.llmClient(context.Background())
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			assert.True(t, svc.HasAPIKey())
		}()
	}
	wg.Wait()

	got, err := svc.llmClient(context.Background())
	require.NoError(t, err)
	assert.Same(t, client, got)
}

func TestService_FactoryErrorNotCached(t *testing.T) {
	calls := 0
	factory := func(context.Context, *llm.Config, string) (llm.Client, error) {
		calls++
		return nil, errors.New("boom")
	}
	svc := NewService(WithClientFactory(factory))

	for range 2 {
		_, err := svc.GenerateQuestions(context.Background(), GenerateParams{Resume: "r", OpenEndedCount: 1})
		assert.Error(t, err)
	}
	assert.Equal(t, 2, calls)
	assert.NoError(t, svc.Close())
}
