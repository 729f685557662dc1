// Package prompts holds the language-model prompt templates. Templates live
// in JSON files embedded at compile time and use {{.Key}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Prompt file and keys used by the interview service.
const (
	InterviewFile           = "interview.json"
	GenerateQuestionsSystem = "generate-questions-system"
	GenerateQuestions       = "generate-questions"
	EvaluateAnswersSystem   = "evaluate-answers-system"
	EvaluateAnswers         = "evaluate-answers"
)

var placeholderPattern = regexp.MustCompile(`\{\{\.(\w+)\}\}`)

//go:embed *.json
var promptFiles embed.FS

// files caches parsed prompt files by name.
var files sync.Map

// Get returns the template stored under key in filename.
func Get(filename, key string) (string, error) {
	templates, err := loadFile(filename)
	if err != nil {
		return "", err
	}
	template, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return template, nil
}

// Format replaces {{.Key}} placeholders with values from data in a single
// pass. Unknown placeholders are kept and substituted values are not re-scanned.
func Format(template string, data map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := match[3 : len(match)-2]
		if value, ok := data[key]; ok {
			return value
		}
		return match
	})
}

// Render loads a template and fills every placeholder from data. It fails when
// the template references a key that data does not provide.
func Render(filename, key string, data map[string]string) (string, error) {
	template, err := Get(filename, key)
	if err != nil {
		return "", err
	}

	var missing []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if _, ok := data[m[1]]; !ok {
			missing = append(missing, m[1])
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", fmt.Errorf("prompt %s/%s: unresolved placeholders: %s", filename, key, strings.Join(missing, ", "))
	}

	return Format(template, data), nil
}

func loadFile(filename string) (map[string]string, error) {
	if cached, ok := files.Load(filename); ok {
		return cached.(map[string]string), nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var templates map[string]string
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	actual, _ := files.LoadOrStore(filename, templates)
	return actual.(map[string]string), nil
}
