package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/jonathan/interview-prep/internal/interview"
	"github.com/jonathan/interview-prep/internal/observability"
	"github.com/jonathan/interview-prep/internal/session"
	"github.com/jonathan/interview-prep/internal/types"
)

const promptSkip = "Skip"

// asker collects input for the practice command.
type asker interface {
	// Ask reads a line of text. validate may be nil.
	Ask(label, defaultValue string, validate func(string) error) (string, error)
	// Choose returns the index of the selected item.
	Choose(label string, items []string) (int, error)
}

// promptAsker asks on the terminal.
type promptAsker struct{}

func (promptAsker) Ask(label, defaultValue string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: defaultValue,
	}
	if validate != nil {
		prompt.Validate = validate
	}
	return prompt.Run()
}

func (promptAsker) Choose(label string, items []string) (int, error) {
	sel := promptui.Select{
		Label: label,
		Items: items,
		Size:  max(len(items), 5),
	}
	idx, _, err := sel.Run()
	return idx, err
}

type practiceOptions struct {
	resume  string
	company string
	jobURL  string
	out     string
}

func (a *app) practiceCommand() *cobra.Command {
	var opts practiceOptions
	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Run an interactive mock interview in the terminal",
		Long:  "Collect the setup, generate questions, ask them one by one and show the evaluation of your answers.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPractice(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.resume, "resume", "r", "", "Path to résumé (asked for when omitted)")
	cmd.Flags().StringVar(&opts.company, "company", "", "Default company website URL")
	cmd.Flags().StringVar(&opts.jobURL, "job-url", "", "Default job posting URL")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the evaluation as JSON to this file")
	return cmd
}

func (a *app) runPractice(cmd *cobra.Command, opts practiceOptions) error {
	ask := a.asker
	if ask == nil {
		ask = promptAsker{}
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)

	state, err := collectSetup(ask, opts)
	if err != nil {
		return err
	}
	input := state.Setup()
	if err := input.Validate(); err != nil {
		return err
	}

	svc := a.service()
	defer func() { _ = svc.Close() }()

	state = session.Reduce(state, session.SetLoading{Loading: true})
	fmt.Fprintln(out, "Researching the company and generating questions...")
	companyInfo, jobInfo := svc.PrepareContext(ctx, input)
	questions, err := svc.GenerateQuestions(ctx, interview.GenerateParams{
		Resume:         input.Resume,
		CompanyInfo:    companyInfo,
		JobInfo:        jobInfo,
		OpenEndedCount: input.Count(),
	})
	state = session.Reduce(state, session.SetLoading{Loading: false})
	if err != nil {
		return fmt.Errorf("failed to generate questions: %w", err)
	}
	state = session.Reduce(state, session.SetQuestions{Questions: questions})
	state = session.Reduce(state, session.SetStep{Step: session.StepInterview})

	state, err = runQuestions(ask, printer, state)
	if err != nil {
		return err
	}

	answered, total := state.Progress()
	fmt.Fprintf(out, "\nAnswered %d of %d questions. Evaluating...\n", answered, total)

	state = session.Reduce(state, session.SetLoading{Loading: true})
	evaluation, err := svc.EvaluateAnswers(ctx, interview.EvaluateParams{
		Resume:      state.Resume,
		Questions:   state.Questions,
		Answers:     state.Answers,
		CompanyInfo: companyInfo,
		JobInfo:     jobInfo,
	})
	state = session.Reduce(state, session.SetLoading{Loading: false})
	if err != nil {
		return fmt.Errorf("failed to evaluate answers: %w", err)
	}
	state = session.Reduce(state, session.SetEvaluation{Evaluation: evaluation})
	state = session.Reduce(state, session.SetStep{Step: session.StepResults})

	printer.PrintEvaluation(state.Evaluation)

	if opts.out != "" {
		if err := writeJSONFile(opts.out, state.Evaluation); err != nil {
			return err
		}
		fmt.Fprintf(out, "Evaluation written to %s\n", opts.out)
	}
	return nil
}

// collectSetup asks for the setup fields and returns the resulting state.
func collectSetup(ask asker, opts practiceOptions) (session.State, error) {
	state := session.Initial()

	resumePath := opts.resume
	if resumePath == "" {
		var err error
		resumePath, err = ask.Ask("Résumé file (PDF, DOCX or text)", "", required("résumé file"))
		if err != nil {
			return state, err
		}
	}
	resume, err := readResume(strings.TrimSpace(resumePath))
	if err != nil {
		return state, err
	}
	state = session.Reduce(state, session.SetResume{Resume: resume})

	website, err := ask.Ask("Company website (optional)", opts.company, nil)
	if err != nil {
		return state, err
	}
	state = session.Reduce(state, session.SetCompanyWebsite{URL: strings.TrimSpace(website)})

	jobURL, err := ask.Ask("Job posting URL (optional)", opts.jobURL, nil)
	if err != nil {
		return state, err
	}
	state = session.Reduce(state, session.SetJobPostingURL{URL: strings.TrimSpace(jobURL)})

	description, err := ask.Ask("Job description (optional)", "", nil)
	if err != nil {
		return state, err
	}
	state = session.Reduce(state, session.SetJobDescription{Description: strings.TrimSpace(description)})

	countText, err := ask.Ask(
		fmt.Sprintf("Open-ended questions (%d-%d)", types.MinOpenEndedCount, types.MaxOpenEndedCount),
		strconv.Itoa(state.OpenEndedCount), validateCount)
	if err != nil {
		return state, err
	}
	count, err := strconv.Atoi(strings.TrimSpace(countText))
	if err != nil {
		return state, fmt.Errorf("invalid question count %q: %w", countText, err)
	}
	state = session.Reduce(state, session.SetOpenEndedCount{Count: count})

	return state, nil
}

// runQuestions asks every question in order and records the answers.
func runQuestions(ask asker, printer *observability.Printer, state session.State) (session.State, error) {
	_, total := state.Progress()
	for {
		q, ok := state.CurrentQuestion()
		if !ok {
			return state, nil
		}
		printer.PrintQuestion(q, state.CurrentQuestionIndex+1, total)

		answer, err := askAnswer(ask, q, state.Answers[q.ID])
		if err != nil {
			return state, err
		}
		state = session.Reduce(state, session.SetAnswer{QuestionID: q.ID, Answer: answer})
		state = session.Reduce(state, session.SetCurrentQuestion{Index: state.CurrentQuestionIndex + 1})
	}
}

// askAnswer selects an option for multiple-choice questions and reads free
// text otherwise. A skipped question yields an empty answer.
func askAnswer(ask asker, q types.FlatQuestion, previous string) (string, error) {
	if q.Kind == types.KindMultipleChoice && len(q.Options) > 0 {
		items := append(append([]string{}, q.Options...), promptSkip)
		idx, err := ask.Choose("Your answer", items)
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(q.Options) {
			return "", nil
		}
		return q.Options[idx], nil
	}

	answer, err := ask.Ask("Your answer (empty to skip)", previous, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func validateCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a number")
	}
	if n < types.MinOpenEndedCount || n > types.MaxOpenEndedCount {
		return fmt.Errorf("must be between %d and %d", types.MinOpenEndedCount, types.MaxOpenEndedCount)
	}
	return nil
}
