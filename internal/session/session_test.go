package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-prep/internal/types"
)

func sampleQuestions() *types.QuestionSet {
	return &types.QuestionSet{
		MultipleChoice: []types.MultipleChoiceQuestion{
			{Question: "q1", Options: []string{"A", "B"}},
			{Question: "q2"},
			{Question: "q3"},
		},
		Cultural: []types.CulturalQuestion{{Question: "c1"}, {Question: "c2"}, {Question: "c3"}},
		OpenEnded: []types.OpenEndedQuestion{
			{Question: "o1"},
		},
	}
}

func TestInitial(t *testing.T) {
	s := Initial()
	assert.Equal(t, StepSetup, s.Step)
	assert.Equal(t, 9, s.OpenEndedCount)
	assert.NotNil(t, s.Answers)
	assert.Empty(t, s.Answers)
	assert.Nil(t, s.Questions)
	assert.Nil(t, s.Evaluation)
	assert.False(t, s.Loading)
	assert.Empty(t, s.Error)
}

func TestReduce_SetupFields(t *testing.T) {
	s := Initial()
	s = Reduce(s, SetResume{Resume: "resume"})
	s = Reduce(s, SetCompanyWebsite{URL: "https://acme.example"})
	s = Reduce(s, SetJobPostingURL{URL: "https://jobs.example/1"})
	s = Reduce(s, SetJobDescription{Description: "Go developer"})
	s = Reduce(s, SetOpenEndedCount{Count: 4})

	assert.Equal(t, "resume", s.Resume)
	assert.Equal(t, "https://acme.example", s.CompanyWebsite)
	assert.Equal(t, "https://jobs.example/1", s.JobPostingURL)
	assert.Equal(t, "Go developer", s.JobDescription)
	assert.Equal(t, 4, s.OpenEndedCount)

	setup := s.Setup()
	assert.Equal(t, "resume", setup.Resume)
	assert.Equal(t, 4, setup.Count())
}

func TestReduce_SetAnswerDoesNotMutateInput(t *testing.T) {
	before := Reduce(Initial(), SetAnswer{QuestionID: "mcq-0", Answer: "A"})
	after := Reduce(before, SetAnswer{QuestionID: "cultural-0", Answer: "Ownership"})

	assert.Equal(t, types.AnswerSet{"mcq-0": "A"}, before.Answers)
	assert.Equal(t, types.AnswerSet{"mcq-0": "A", "cultural-0": "Ownership"}, after.Answers)

	overwritten := Reduce(after, SetAnswer{QuestionID: "mcq-0", Answer: "B"})
	assert.Equal(t, "B", overwritten.Answers["mcq-0"])
	assert.Equal(t, "A", after.Answers["mcq-0"])
}

func TestReduce_InterviewFlow(t *testing.T) {
	s := Reduce(Initial(), SetLoading{Loading: true})
	assert.True(t, s.Loading)

	s = Reduce(s, SetQuestions{Questions: sampleQuestions()})
	s = Reduce(s, SetLoading{Loading: false})
	s = Reduce(s, SetStep{Step: StepInterview})
	assert.Equal(t, StepInterview, s.Step)

	q, ok := s.CurrentQuestion()
	require.True(t, ok)
	assert.Equal(t, "mcq-0", q.ID)

	s = Reduce(s, SetCurrentQuestion{Index: 6})
	q, ok = s.CurrentQuestion()
	require.True(t, ok)
	assert.Equal(t, "openEnded-0", q.ID)

	s = Reduce(s, SetCurrentQuestion{Index: 7})
	_, ok = s.CurrentQuestion()
	assert.False(t, ok)

	s = Reduce(s, SetAnswer{QuestionID: "mcq-0", Answer: "A"})
	s = Reduce(s, SetAnswer{QuestionID: "openEnded-0", Answer: "I would shard it"})
	answered, total := s.Progress()
	assert.Equal(t, 2, answered)
	assert.Equal(t, 7, total)

	eval := &types.Evaluation{OverallScore: 72}
	s = Reduce(s, SetEvaluation{Evaluation: eval})
	s = Reduce(s, SetStep{Step: StepResults})
	assert.Same(t, eval, s.Evaluation)
	assert.Equal(t, StepResults, s.Step)
}

func TestReduce_SetError(t *testing.T) {
	s := Reduce(Initial(), SetError{Message: "boom"})
	assert.Equal(t, "boom", s.Error)
	s = Reduce(s, SetError{})
	assert.Empty(t, s.Error)
}

func TestReduce_ResetInterviewKeepsSetup(t *testing.T) {
	s := Initial()
	s = Reduce(s, SetResume{Resume: "resume"})
	s = Reduce(s, SetCompanyWebsite{URL: "https://acme.example"})
	s = Reduce(s, SetJobDescription{Description: "Go developer"})
	s = Reduce(s, SetOpenEndedCount{Count: 3})
	s = Reduce(s, SetQuestions{Questions: sampleQuestions()})
	s = Reduce(s, SetAnswer{QuestionID: "mcq-0", Answer: "A"})
	s = Reduce(s, SetCurrentQuestion{Index: 2})
	s = Reduce(s, SetEvaluation{Evaluation: &types.Evaluation{}})
	s = Reduce(s, SetError{Message: "boom"})
	s = Reduce(s, SetStep{Step: StepResults})

	reset := Reduce(s, ResetInterview{})
	assert.Equal(t, "resume", reset.Resume)
	assert.Equal(t, "https://acme.example", reset.CompanyWebsite)
	assert.Equal(t, "Go developer", reset.JobDescription)
	assert.Equal(t, 3, reset.OpenEndedCount)
	assert.Nil(t, reset.Questions)
	assert.Empty(t, reset.Answers)
	assert.Zero(t, reset.CurrentQuestionIndex)
	assert.Nil(t, reset.Evaluation)
	assert.Empty(t, reset.Error)
	assert.Equal(t, StepSetup, reset.Step)

	assert.Equal(t, "A", s.Answers["mcq-0"])
}

func TestReduce_ResetAll(t *testing.T) {
	s := Reduce(Initial(), SetResume{Resume: "resume"})
	s = Reduce(s, SetStep{Step: StepInterview})
	assert.Equal(t, Initial(), Reduce(s, ResetAll{}))
}

func TestReduce_NilAction(t *testing.T) {
	s := Reduce(Initial(), SetResume{Resume: "resume"})
	assert.Equal(t, s, Reduce(s, nil))
}

func TestProgress_NoQuestions(t *testing.T) {
	answered, total := Initial().Progress()
	assert.Zero(t, answered)
	assert.Zero(t, total)
}
