// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/interview-prep/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer writes boxed summaries of interview artifacts.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// shorten truncates s to limit runes, marking the cut with "...".
func shorten(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	inner := boxWidth - 4
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(shorten(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// PrintQuestionSet outputs every question grouped by kind.
func (p *Printer) PrintQuestionSet(qs *types.QuestionSet) {
	if qs == nil || qs.Len() == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Multiple choice: %d   Cultural: %d   Open-ended: %d\n",
		len(qs.MultipleChoice), len(qs.Cultural), len(qs.OpenEnded)))

	for _, q := range qs.Flatten() {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("[%s] %s\n", q.ID, q.Question))
		for i, opt := range q.Options {
			sb.WriteString(fmt.Sprintf("    %c) %s\n", 'A'+rune(i%26), opt))
		}
		if q.Category != "" {
			sb.WriteString(fmt.Sprintf("    category: %s\n", q.Category))
		}
	}

	p.printBox("INTERVIEW QUESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuestion outputs a single question for interactive practice.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintQuestion(q types.FlatQuestion, position, total int) {
	var sb strings.Builder
	sb.WriteString(q.Question)
	if q.Context != "" && q.Kind != types.KindMultipleChoice {
		sb.WriteString("\n\nContext: ")
		sb.WriteString(q.Context)
	}
	title := fmt.Sprintf("QUESTION %d/%d  (%s)", position, total, q.ID)
	p.printBox(title, wrap(sb.String(), boxWidth-4))
}

// PrintEvaluation outputs the score, strengths, improvement areas and
// per-question feedback of an evaluation.
func (p *Printer) PrintEvaluation(eval *types.Evaluation) {
	if eval == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall score: %.0f/100\n", eval.OverallScore))
	if eval.Summary.TotalQuestions > 0 {
		sb.WriteString(fmt.Sprintf("Questions: %d (%d need refinement)\n",
			eval.Summary.TotalQuestions, eval.Summary.QuestionsNeedingRefinement))
	}
	if eval.Summary.OverallAssessment != "" {
		sb.WriteString("\n")
		sb.WriteString(wrap(eval.Summary.OverallAssessment, boxWidth-4))
		sb.WriteString("\n")
	}

	if len(eval.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		count := min(len(eval.Strengths), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", eval.Strengths[i].Area))
		}
		if len(eval.Strengths) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(eval.Strengths)-maxItemsToShow))
		}
	}

	if len(eval.AreasForImprovement) > 0 {
		areas := append([]types.ImprovementArea(nil), eval.AreasForImprovement...)
		sort.SliceStable(areas, func(i, j int) bool {
			return priorityRank(areas[i].Priority) < priorityRank(areas[j].Priority)
		})

		sb.WriteString("\nAreas for improvement:\n")
		count := min(len(areas), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  ⚠ %s", areas[i].Area))
			if areas[i].Priority != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", areas[i].Priority))
			}
			sb.WriteString("\n")
			for _, s := range areas[i].Suggestions {
				sb.WriteString(fmt.Sprintf("      - %s\n", s))
			}
		}
		if len(areas) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(areas)-maxItemsToShow))
		}
	}

	if len(eval.Summary.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, r := range eval.Summary.Recommendations {
			sb.WriteString(fmt.Sprintf("  → %s\n", r))
		}
	}

	p.printBox("INTERVIEW EVALUATION", strings.TrimSuffix(sb.String(), "\n"))

	if len(eval.QuestionEvaluations) > 0 {
		var qb strings.Builder
		for i, qe := range eval.QuestionEvaluations {
			qb.WriteString(fmt.Sprintf("%-14s %4.1f  %s\n", string(qe.QuestionID), qe.Score, qe.Category))
			if qe.Feedback != "" {
				qb.WriteString(fmt.Sprintf("  %s\n", qe.Feedback))
			}
			if i < len(eval.QuestionEvaluations)-1 {
				qb.WriteString("\n")
			}
		}
		p.printBox("PER-QUESTION FEEDBACK", strings.TrimSuffix(qb.String(), "\n"))
	}
}

// PrintExtraction outputs a preview of scraped company or job text.
func (p *Printer) PrintExtraction(title, text string) {
	const previewLines = 12

	lines := strings.Split(wrap(text, boxWidth-4), "\n")
	content := lines
	if len(lines) > previewLines {
		content = append(lines[:previewLines:previewLines], fmt.Sprintf("... and %d more lines", len(lines)-previewLines))
	}
	header := fmt.Sprintf("%d characters\n\n", len([]rune(text)))
	p.printBox(strings.ToUpper(title), header+strings.Join(content, "\n"))
}

func priorityRank(priority string) int {
	switch strings.ToLower(priority) {
	case "high":
		return 0
	case "medium":
		return 1
	case "low":
		return 2
	default:
		return 3
	}
}

// wrap breaks text into lines of at most width runes at word boundaries.
func wrap(text string, width int) string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len([]rune(line))+1+len([]rune(w)) > width {
				out = append(out, line)
				line = w
				continue
			}
			line += " " + w
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
