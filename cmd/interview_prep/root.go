package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/interview-prep/internal/config"
	"github.com/jonathan/interview-prep/internal/fetch"
	"github.com/jonathan/interview-prep/internal/ingestion"
	"github.com/jonathan/interview-prep/internal/interview"
	"github.com/jonathan/interview-prep/internal/logging"
)

const appName = "interview_prep"

// app carries the state shared by every command: flags bound to viper, the
// loaded configuration and the logger.
type app struct {
	v       *viper.Viper
	cfgFile string

	cfg    *config.Config
	logger *zap.Logger

	// newService builds the interview service; replaced in tests.
	newService func(cfg *config.Config, logger *zap.Logger) *interview.Service
	// asker drives the practice command; nil means interactive prompts.
	asker asker
}

func newApp() *app {
	return &app{
		v:          viper.New(),
		newService: buildService,
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "InterviewPrepPro interview practice",
		Long: "InterviewPrepPro generates tailored interview questions from a résumé, a company website " +
			"and a job posting, and scores your answers with a language model.",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	root.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	_ = a.v.BindPFlag("log.debug", root.PersistentFlags().Lookup("debug"))
	_ = a.v.BindPFlag("log.json", root.PersistentFlags().Lookup("json"))

	root.AddCommand(
		a.serveCommand(),
		a.scrapeCommand(),
		a.generateCommand(),
		a.evaluateCommand(),
		a.practiceCommand(),
		a.resumeTextCommand(),
	)
	return root
}

// setup loads configuration and builds the logger before any command runs.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadWith(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	logger.Debug("configuration loaded",
		zap.String("config_file", a.cfgFile),
		zap.String(logging.FieldProvider, cfg.LLM.Provider))
	return nil
}

func (a *app) service() *interview.Service {
	return a.newService(a.cfg, a.logger)
}

// newExtractor builds the page extractor from the fetch section.
func newExtractor(cfg *config.Config, logger *zap.Logger) *ingestion.Extractor {
	return ingestion.NewExtractor(cfg.FetchOptions(),
		ingestion.WithBrowserFallback(cfg.Fetch.UseBrowser, fetch.DefaultBrowserTimeout),
		ingestion.WithLogger(logger),
	)
}

// buildService wires the scraper and model client from configuration.
func buildService(cfg *config.Config, logger *zap.Logger) *interview.Service {
	return interview.NewService(
		interview.WithLLMConfig(cfg.LLMSettings(), cfg.APIKey()),
		interview.WithScraper(newExtractor(cfg, logger)),
		interview.WithSanitize(cfg.Interview.Sanitize),
		interview.WithJSONMode(cfg.LLM.JSONMode),
		interview.WithLogger(logger),
	)
}
