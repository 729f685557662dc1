// Package types provides type definitions for structured data used throughout the interview-prep system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// QuestionKind identifies one of the three question sequences in a QuestionSet.
type QuestionKind string

const (
	// KindMultipleChoice is the multiple-choice sequence (exactly 3 questions)
	KindMultipleChoice QuestionKind = "mcq"
	// KindCultural is the cultural-fit sequence (exactly 3 questions)
	KindCultural QuestionKind = "cultural"
	// KindOpenEnded is the open-ended sequence (requested count, at least 1)
	KindOpenEnded QuestionKind = "openEnded"
)

// Fixed sizes of the question sequences.
const (
	MultipleChoiceCount = 3
	CulturalCount       = 3
	MinOpenEndedCount   = 1
	MaxOpenEndedCount   = 20
	// DefaultOpenEndedCount is used when the client does not ask for a specific count
	DefaultOpenEndedCount = 9
)

// QuestionSet is the structured question set produced by the language model.
type QuestionSet struct {
	MultipleChoice []MultipleChoiceQuestion `json:"multipleChoice"`
	Cultural       []CulturalQuestion       `json:"cultural"`
	OpenEnded      []OpenEndedQuestion      `json:"openEnded"`
}

// MultipleChoiceQuestion is a question with a fixed set of options and one correct answer.
type MultipleChoiceQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Category      string   `json:"category"` // company|market|technical
}

// CulturalQuestion probes values, culture, or recent company news.
type CulturalQuestion struct {
	Question       string   `json:"question"`
	Context        string   `json:"context"`
	ExpectedPoints []string `json:"expectedPoints"`
	Category       string   `json:"category"` // values|culture|news
}

// OpenEndedQuestion probes technical depth, experience, behaviour, or a case study.
type OpenEndedQuestion struct {
	Question           string   `json:"question"`
	Context            string   `json:"context"`
	EvaluationCriteria []string `json:"evaluationCriteria"`
	Category           string   `json:"category"` // technical|experience|behavioral|case
}

// QuestionID builds the stable per-question identifier used as the AnswerSet key.
func QuestionID(kind QuestionKind, index int) string {
	return fmt.Sprintf("%s-%d", kind, index)
}

// Len returns the total number of questions across all sequences.
func (q *QuestionSet) Len() int {
	if q == nil {
		return 0
	}
	return len(q.MultipleChoice) + len(q.Cultural) + len(q.OpenEnded)
}

// IDs returns every question identifier in presentation order:
// multiple-choice first, then cultural, then open-ended.
func (q *QuestionSet) IDs() []string {
	if q == nil {
		return nil
	}
	ids := make([]string, 0, q.Len())
	for i := range q.MultipleChoice {
		ids = append(ids, QuestionID(KindMultipleChoice, i))
	}
	for i := range q.Cultural {
		ids = append(ids, QuestionID(KindCultural, i))
	}
	for i := range q.OpenEnded {
		ids = append(ids, QuestionID(KindOpenEnded, i))
	}
	return ids
}

// FlatQuestion is one question of any kind, flattened for sequential presentation.
type FlatQuestion struct {
	ID       string
	Kind     QuestionKind
	Question string
	Options  []string // only set for multiple-choice questions
	Context  string
	Category string
}

// Flatten returns all questions in presentation order.
func (q *QuestionSet) Flatten() []FlatQuestion {
	if q == nil {
		return nil
	}
	flat := make([]FlatQuestion, 0, q.Len())
	for i, mc := range q.MultipleChoice {
		flat = append(flat, FlatQuestion{
			ID:       QuestionID(KindMultipleChoice, i),
			Kind:     KindMultipleChoice,
			Question: mc.Question,
			Options:  mc.Options,
			Context:  mc.Explanation,
			Category: mc.Category,
		})
	}
	for i, c := range q.Cultural {
		flat = append(flat, FlatQuestion{
			ID:       QuestionID(KindCultural, i),
			Kind:     KindCultural,
			Question: c.Question,
			Context:  c.Context,
			Category: c.Category,
		})
	}
	for i, o := range q.OpenEnded {
		flat = append(flat, FlatQuestion{
			ID:       QuestionID(KindOpenEnded, i),
			Kind:     KindOpenEnded,
			Question: o.Question,
			Context:  o.Context,
			Category: o.Category,
		})
	}
	return flat
}

// AnswerSet maps question identifiers (see QuestionID) to the user's answer text.
// Missing keys are unanswered questions.
type AnswerSet map[string]string

// Unanswered returns the identifiers from ids that have no non-empty answer.
func (a AnswerSet) Unanswered(ids []string) []string {
	var missing []string
	for _, id := range ids {
		if a[id] == "" {
			missing = append(missing, id)
		}
	}
	return missing
}
