// Package schemas provides JSON Schema validation for language-model output.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/interview-prep/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	if ve.Schema != "" {
		sb.WriteString(fmt.Sprintf("%s validation failed:\n", ve.Schema))
	} else {
		sb.WriteString("validation failed:\n")
	}
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

var (
	compiledMu sync.Mutex
	compiled   = map[string]*gojsonschema.Schema{}
)

// compile loads an embedded schema once and reuses it. Load failures are not cached.
func compile(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[name]; ok {
		return s, nil
	}
	data, err := schemas.Load(name)
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "schema not embedded", Cause: err}
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "invalid schema", Cause: err}
	}
	compiled[name] = s
	return s, nil
}

// ValidateQuestionSet checks that raw JSON holds all three question sequences
// with 3 multiple-choice, 3 cultural and at least one open-ended question.
func ValidateQuestionSet(raw []byte) error {
	return validateEmbedded(schemas.QuestionSet, "question set", raw)
}

// ValidateEvaluation checks that raw JSON holds the five top-level evaluation fields.
func ValidateEvaluation(raw []byte) error {
	return validateEmbedded(schemas.Evaluation, "evaluation", raw)
}

func validateEmbedded(name, label string, raw []byte) error {
	schema, err := compile(name)
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("failed to read %s document: %w", label, err)
	}
	return toValidationError(label, result)
}

func toValidationError(label string, result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: label,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
