package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/interview-prep/internal/documents"
	"github.com/jonathan/interview-prep/internal/types"
)

// questionsFile is the document written by generate and read by evaluate.
// The context strings travel with the questions so evaluation sees the same
// company and job information the questions were generated from.
type questionsFile struct {
	Questions   *types.QuestionSet `json:"questions"`
	CompanyInfo string             `json:"companyInfo,omitempty"`
	JobInfo     string             `json:"jobInfo,omitempty"`
}

// readResume extracts résumé text from a PDF, DOCX or plain text file.
func readResume(path string) (string, error) {
	text, err := documents.ExtractFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume %s: %w", path, err)
	}
	return text, nil
}

// readQuestionsFile accepts either a questionsFile (as written by generate or
// returned by the API) or a bare question set.
func readQuestionsFile(path string) (*questionsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read questions file: %w", err)
	}

	var file questionsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse questions file %s: %w", path, err)
	}
	if file.Questions == nil {
		var qs types.QuestionSet
		if err := json.Unmarshal(data, &qs); err != nil {
			return nil, fmt.Errorf("failed to parse questions file %s: %w", path, err)
		}
		file.Questions = &qs
	}
	if file.Questions.Len() == 0 {
		return nil, fmt.Errorf("no questions found in %s", path)
	}
	return &file, nil
}

// readAnswersFile reads a JSON object mapping question identifiers to answers.
func readAnswersFile(path string) (types.AnswerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}
	var answers types.AnswerSet
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("failed to parse answers file %s: %w", path, err)
	}
	if answers == nil {
		answers = types.AnswerSet{}
	}
	return answers, nil
}

// writeJSONFile writes v as indented JSON.
func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
