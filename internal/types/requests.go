//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// InputError reports a request that failed validation. It is never sent upstream.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// SetupInput is the interview setup submitted by the user.
type SetupInput struct {
	Resume         string `json:"resume" validate:"required"`
	CompanyWebsite string `json:"companyWebsite,omitempty"`
	JobPostingURL  string `json:"jobPostingUrl,omitempty"`
	JobDescription string `json:"jobDescription,omitempty"`
	OpenEndedCount *int   `json:"openEndedCount,omitempty" validate:"omitempty,min=1,max=20"`
}

// Normalize trims surrounding whitespace from all text fields.
func (s *SetupInput) Normalize() {
	s.Resume = strings.TrimSpace(s.Resume)
	s.CompanyWebsite = strings.TrimSpace(s.CompanyWebsite)
	s.JobPostingURL = strings.TrimSpace(s.JobPostingURL)
	s.JobDescription = strings.TrimSpace(s.JobDescription)
}

// Count returns the requested open-ended question count, or the default when unset.
func (s *SetupInput) Count() int {
	if s.OpenEndedCount == nil {
		return DefaultOpenEndedCount
	}
	return *s.OpenEndedCount
}

// Validate normalizes the input and checks the setup invariants: a résumé, at
// least one of company website or job description, and an open-ended count
// within [1,20].
func (s *SetupInput) Validate() error {
	s.Normalize()
	if err := validate.Struct(s); err != nil {
		return toInputError(err)
	}
	if s.CompanyWebsite == "" && s.JobDescription == "" {
		return &InputError{Message: "Either company website or job description is required"}
	}
	return nil
}

// EvaluateRequest carries everything needed to score a completed interview.
type EvaluateRequest struct {
	Resume      string       `json:"resume" validate:"required"`
	Questions   *QuestionSet `json:"questions" validate:"required"`
	Answers     AnswerSet    `json:"answers" validate:"required"`
	CompanyInfo string       `json:"companyInfo,omitempty"`
	JobInfo     string       `json:"jobInfo,omitempty"`
}

// Validate checks that résumé, questions and answers are present.
// An empty answer map is allowed; individual missing answers are legal.
func (r *EvaluateRequest) Validate() error {
	r.Resume = strings.TrimSpace(r.Resume)
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return &InputError{Message: "Resume, questions, and answers are required"}
		}
		return err
	}
	return nil
}

// toInputError converts the first validator failure into an InputError with
// the user-facing message for that field.
func toInputError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Resume":
		return &InputError{Field: "resume", Message: "Resume is required"}
	case "OpenEndedCount":
		return &InputError{
			Field:   "openEndedCount",
			Message: fmt.Sprintf("Open-ended questions must be between %d and %d", MinOpenEndedCount, MaxOpenEndedCount),
		}
	default:
		return &InputError{Field: fe.Field(), Message: fe.Error()}
	}
}
