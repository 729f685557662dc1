package interview

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/interview-prep/internal/ingestion"
	"github.com/jonathan/interview-prep/internal/types"
)

// Availability values reported in generation metadata.
const (
	Available   = "Available"
	Unavailable = "Unavailable"
)

// Availability reports whether context text was supplied.
func Availability(info string) string {
	if info == "" {
		return Unavailable
	}
	return Available
}

// PrepareContext gathers the company and job text for a setup. The company
// site and job posting are scraped concurrently. Extraction failures never
// fail the call: a failed company scrape yields ingestion.CompanyInfoUnavailable,
// a failed job scrape falls back to the pasted description and then to
// ingestion.JobInfoUnavailable. Without a job URL the pasted description is used.
func (s *Service) PrepareContext(ctx context.Context, input types.SetupInput) (companyInfo, jobInfo string) {
	if s.scraper == nil {
		if input.CompanyWebsite != "" {
			companyInfo = ingestion.CompanyInfoUnavailable
		}
		jobInfo = input.JobDescription
		if input.JobPostingURL != "" && jobInfo == "" {
			jobInfo = ingestion.JobInfoUnavailable
		}
		return companyInfo, jobInfo
	}

	g, gCtx := errgroup.WithContext(ctx)

	if input.CompanyWebsite != "" {
		g.Go(func() error {
			text, _, err := s.scraper.ScrapeCompany(gCtx, input.CompanyWebsite)
			if err != nil {
				s.logger.Warn("company scrape failed, using fallback",
					zap.String("url", input.CompanyWebsite), zap.Error(err))
				companyInfo = ingestion.CompanyInfoUnavailable
				return nil
			}
			companyInfo = text
			return nil
		})
	}

	if input.JobPostingURL != "" {
		g.Go(func() error {
			text, _, err := s.scraper.ExtractJob(gCtx, input.JobPostingURL)
			if err != nil {
				s.logger.Warn("job extraction failed, using provided description",
					zap.String("url", input.JobPostingURL), zap.Error(err))
				jobInfo = input.JobDescription
				if jobInfo == "" {
					jobInfo = ingestion.JobInfoUnavailable
				}
				return nil
			}
			jobInfo = text
			return nil
		})
	} else {
		jobInfo = input.JobDescription
	}

	// Goroutines never return errors; failures become fallback text.
	_ = g.Wait()
	return companyInfo, jobInfo
}
