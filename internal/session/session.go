// Package session holds the state of one interview run as an immutable value
// updated by a pure reducer.
package session

import (
	"maps"

	"github.com/jonathan/interview-prep/internal/types"
)

// Step is the phase of an interview run.
type Step string

const (
	// StepSetup collects the résumé and company/job details
	StepSetup Step = "setup"
	// StepInterview presents questions and collects answers
	StepInterview Step = "interview"
	// StepResults shows the evaluation
	StepResults Step = "results"
)

// State is the full state of one run. Treat it as a value: Reduce returns
// a new State and never mutates the one passed in.
type State struct {
	Resume         string
	CompanyWebsite string
	JobPostingURL  string
	JobDescription string
	OpenEndedCount int

	Questions            *types.QuestionSet
	CurrentQuestionIndex int
	Answers              types.AnswerSet

	Evaluation *types.Evaluation

	Loading bool
	Error   string
	Step    Step
}

// Initial returns the state of a fresh run.
func Initial() State {
	return State{
		OpenEndedCount: types.DefaultOpenEndedCount,
		Answers:        types.AnswerSet{},
		Step:           StepSetup,
	}
}

// Action is a named state transition.
type Action interface {
	apply(State) State
}

// Reduce applies action to s and returns the new state. A nil action returns s unchanged.
func Reduce(s State, action Action) State {
	if action == nil {
		return s
	}
	return action.apply(s)
}

// SetResume replaces the résumé text.
type SetResume struct{ Resume string }

// SetCompanyWebsite replaces the company website URL.
type SetCompanyWebsite struct{ URL string }

// SetJobPostingURL replaces the job posting URL.
type SetJobPostingURL struct{ URL string }

// SetJobDescription replaces the pasted job description.
type SetJobDescription struct{ Description string }

// SetOpenEndedCount replaces the requested number of open-ended questions.
type SetOpenEndedCount struct{ Count int }

// SetQuestions stores a generated question set.
type SetQuestions struct{ Questions *types.QuestionSet }

// SetAnswer records the answer for one question identifier.
type SetAnswer struct {
	QuestionID string
	Answer     string
}

// SetCurrentQuestion moves to the question at Index.
type SetCurrentQuestion struct{ Index int }

// SetEvaluation stores the evaluation result.
type SetEvaluation struct{ Evaluation *types.Evaluation }

// SetLoading toggles the loading flag.
type SetLoading struct{ Loading bool }

// SetError stores an error message; empty clears it.
type SetError struct{ Message string }

// SetStep moves to another phase.
type SetStep struct{ Step Step }

// ResetInterview clears questions, answers and results but keeps the setup fields.
type ResetInterview struct{}

// ResetAll returns to the initial state.
type ResetAll struct{}

func (a SetResume) apply(s State) State         { s.Resume = a.Resume; return s }
func (a SetCompanyWebsite) apply(s State) State { s.CompanyWebsite = a.URL; return s }
func (a SetJobPostingURL) apply(s State) State  { s.JobPostingURL = a.URL; return s }
func (a SetJobDescription) apply(s State) State { s.JobDescription = a.Description; return s }
func (a SetOpenEndedCount) apply(s State) State { s.OpenEndedCount = a.Count; return s }
func (a SetQuestions) apply(s State) State      { s.Questions = a.Questions; return s }
func (a SetCurrentQuestion) apply(s State) State {
	s.CurrentQuestionIndex = a.Index
	return s
}
func (a SetEvaluation) apply(s State) State { s.Evaluation = a.Evaluation; return s }
func (a SetLoading) apply(s State) State    { s.Loading = a.Loading; return s }
func (a SetError) apply(s State) State      { s.Error = a.Message; return s }
func (a SetStep) apply(s State) State       { s.Step = a.Step; return s }

func (a SetAnswer) apply(s State) State {
	answers := make(types.AnswerSet, len(s.Answers)+1)
	maps.Copy(answers, s.Answers)
	answers[a.QuestionID] = a.Answer
	s.Answers = answers
	return s
}

func (ResetInterview) apply(s State) State {
	next := Initial()
	next.Resume = s.Resume
	next.CompanyWebsite = s.CompanyWebsite
	next.JobPostingURL = s.JobPostingURL
	next.JobDescription = s.JobDescription
	next.OpenEndedCount = s.OpenEndedCount
	return next
}

func (ResetAll) apply(State) State { return Initial() }

// Setup returns the setup fields as a SetupInput.
func (s State) Setup() types.SetupInput {
	count := s.OpenEndedCount
	return types.SetupInput{
		Resume:         s.Resume,
		CompanyWebsite: s.CompanyWebsite,
		JobPostingURL:  s.JobPostingURL,
		JobDescription: s.JobDescription,
		OpenEndedCount: &count,
	}
}

// CurrentQuestion returns the question at CurrentQuestionIndex.
func (s State) CurrentQuestion() (types.FlatQuestion, bool) {
	flat := s.Questions.Flatten()
	if s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(flat) {
		return types.FlatQuestion{}, false
	}
	return flat[s.CurrentQuestionIndex], true
}

// Progress returns how many questions have a non-empty answer and the total.
func (s State) Progress() (answered, total int) {
	ids := s.Questions.IDs()
	return len(ids) - len(s.Answers.Unanswered(ids)), len(ids)
}
