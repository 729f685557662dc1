// Package schemas holds the JSON Schemas that language-model output is checked against.
package schemas

import "embed"

// Schema file names.
const (
	QuestionSet = "question_set.schema.json"
	Evaluation  = "evaluation.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Load returns the raw content of the named schema.
func Load(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists every embedded schema.
func Names() []string {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
