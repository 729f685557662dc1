package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-prep/internal/interview"
	"github.com/jonathan/interview-prep/internal/observability"
	"github.com/jonathan/interview-prep/internal/types"
)

type generateOptions struct {
	resume         string
	company        string
	jobURL         string
	jobDescription string
	count          int
	out            string
}

func (a *app) generateCommand() *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate interview questions for a résumé and target role",
		Long: "Research the company website and job posting, then generate 3 multiple-choice, " +
			"3 cultural and --count open-ended questions.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.resume, "resume", "r", "", "Path to résumé (PDF, DOCX or text) (required)")
	cmd.Flags().StringVar(&opts.company, "company", "", "Company website URL")
	cmd.Flags().StringVar(&opts.jobURL, "job-url", "", "Job posting URL")
	cmd.Flags().StringVar(&opts.jobDescription, "job-description", "", "Job description text")
	cmd.Flags().IntVarP(&opts.count, "count", "n", types.DefaultOpenEndedCount, "Number of open-ended questions (1-20)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the questions as JSON to this file")
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, opts generateOptions) error {
	resume, err := readResume(opts.resume)
	if err != nil {
		return err
	}

	count := opts.count
	input := types.SetupInput{
		Resume:         resume,
		CompanyWebsite: opts.company,
		JobPostingURL:  opts.jobURL,
		JobDescription: opts.jobDescription,
		OpenEndedCount: &count,
	}
	if err := input.Validate(); err != nil {
		return err
	}

	svc := a.service()
	defer func() { _ = svc.Close() }()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	companyInfo, jobInfo := svc.PrepareContext(ctx, input)
	fmt.Fprintf(out, "Company info: %s\nJob info: %s\n\n",
		interview.Availability(companyInfo), interview.Availability(jobInfo))

	questions, err := svc.GenerateQuestions(ctx, interview.GenerateParams{
		Resume:         input.Resume,
		CompanyInfo:    companyInfo,
		JobInfo:        jobInfo,
		OpenEndedCount: input.Count(),
	})
	if err != nil {
		return fmt.Errorf("failed to generate questions: %w", err)
	}

	observability.NewPrinter(out).PrintQuestionSet(questions)

	if opts.out != "" {
		if err := writeJSONFile(opts.out, questionsFile{
			Questions:   questions,
			CompanyInfo: companyInfo,
			JobInfo:     jobInfo,
		}); err != nil {
			return err
		}
		fmt.Fprintf(out, "Questions written to %s\n", opts.out)
	}
	return nil
}
