package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-prep/internal/interview"
	"github.com/jonathan/interview-prep/internal/observability"
	"github.com/jonathan/interview-prep/internal/types"
)

type evaluateOptions struct {
	resume      string
	questions   string
	answers     string
	companyInfo string
	jobInfo     string
	out         string
}

func (a *app) evaluateCommand() *cobra.Command {
	var opts evaluateOptions
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score answers to a generated question set",
		Long:  "Evaluate answers (a JSON object keyed by question id such as mcq-0 or openEnded-3) against a question set written by generate.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runEvaluate(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.resume, "resume", "r", "", "Path to résumé (PDF, DOCX or text) (required)")
	cmd.Flags().StringVarP(&opts.questions, "questions", "q", "", "Path to questions JSON (required)")
	cmd.Flags().StringVarP(&opts.answers, "answers", "a", "", "Path to answers JSON (required)")
	cmd.Flags().StringVar(&opts.companyInfo, "company-info", "", "Company information (overrides the questions file)")
	cmd.Flags().StringVar(&opts.jobInfo, "job-info", "", "Job information (overrides the questions file)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the evaluation as JSON to this file")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("questions")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

func (a *app) runEvaluate(cmd *cobra.Command, opts evaluateOptions) error {
	resume, err := readResume(opts.resume)
	if err != nil {
		return err
	}
	file, err := readQuestionsFile(opts.questions)
	if err != nil {
		return err
	}
	answers, err := readAnswersFile(opts.answers)
	if err != nil {
		return err
	}

	req := types.EvaluateRequest{
		Resume:      resume,
		Questions:   file.Questions,
		Answers:     answers,
		CompanyInfo: firstNonEmpty(opts.companyInfo, file.CompanyInfo),
		JobInfo:     firstNonEmpty(opts.jobInfo, file.JobInfo),
	}
	if err := req.Validate(); err != nil {
		return err
	}

	svc := a.service()
	defer func() { _ = svc.Close() }()

	evaluation, err := svc.EvaluateAnswers(cmd.Context(), interview.EvaluateParams{
		Resume:      req.Resume,
		Questions:   req.Questions,
		Answers:     req.Answers,
		CompanyInfo: req.CompanyInfo,
		JobInfo:     req.JobInfo,
	})
	if err != nil {
		return fmt.Errorf("failed to evaluate answers: %w", err)
	}

	out := cmd.OutOrStdout()
	observability.NewPrinter(out).PrintEvaluation(evaluation)

	if opts.out != "" {
		if err := writeJSONFile(opts.out, evaluation); err != nil {
			return err
		}
		fmt.Fprintf(out, "Evaluation written to %s\n", opts.out)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
