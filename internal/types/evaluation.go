//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Evaluation is the scored assessment of a candidate's answers.
type Evaluation struct {
	OverallScore        float64              `json:"overallScore"` // 0-100
	AreasForImprovement []ImprovementArea    `json:"areasForImprovement"`
	Strengths           []Strength           `json:"strengths"`
	QuestionEvaluations []QuestionEvaluation `json:"questionEvaluations"`
	Summary             EvaluationSummary    `json:"summary"`
}

// ImprovementArea is one area the candidate should work on.
type ImprovementArea struct {
	Area        string   `json:"area"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"` // high|medium|low
	Suggestions []string `json:"suggestions"`
}

// Strength is one area where the candidate performed well.
type Strength struct {
	Area        string   `json:"area"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

// QuestionEvaluation is the per-question feedback.
type QuestionEvaluation struct {
	QuestionID   QuestionRef `json:"questionId"`
	Score        float64     `json:"score"`
	Feedback     string      `json:"feedback"`
	Strengths    []string    `json:"strengths"`
	Improvements []string    `json:"improvements"`
	Category     string      `json:"category"` // mcq|cultural|openEnded
}

// EvaluationSummary is the overall roll-up of an evaluation.
type EvaluationSummary struct {
	TotalQuestions             int      `json:"totalQuestions"`
	QuestionsNeedingRefinement int      `json:"questionsNeedingRefinement"`
	OverallAssessment          string   `json:"overallAssessment"`
	Recommendations            []string `json:"recommendations"`
}

// QuestionRef identifies a question inside an evaluation. Models emit either
// the string identifier ("mcq-1") or a bare index (0), so both are accepted.
type QuestionRef string

// UnmarshalJSON accepts a JSON string or number.
func (r *QuestionRef) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*r = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = QuestionRef(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("questionId must be a string or number, got %s", trimmed)
	}
	*r = QuestionRef(n.String())
	return nil
}
