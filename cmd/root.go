package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kayz/sonar/internal/config"
	"github.com/kayz/sonar/internal/llm"
	"github.com/kayz/sonar/internal/logger"
	"github.com/kayz/sonar/internal/pipeline"
	"github.com/kayz/sonar/internal/search"
)

var (
	logLevel   string
	configPath string
	noBrowser  bool
)

var rootCmd = &cobra.Command{
	Use:   "sonar",
	Short: "sonar query-resolution service",
	Long: `sonar resolves user queries through web retrieval:

Commands:
  sonar serve    Run the HTTP API server (default)
  sonar ask      Resolve one query and print the answer`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	Run: runServe,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level: trace, debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the config file (default ./sonar.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noBrowser, "no-browser", false,
		"Fetch pages over plain HTTP instead of a headless browser")
}

// loadConfig reads the config file named by --config, or the default path.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load()
}

// buildPipeline wires provider, fetcher and engines from config. The
// returned cleanup shuts the shared browser down.
func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, func(), error) {
	var provider llm.Provider
	if cfg.AI.APIKey != "" {
		p, err := llm.NewOpenAI(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("init provider: %w", err)
		}
		provider = p
		logger.Info("[Init] provider ready, model: %s", p.ModelName())
	} else {
		logger.Error("[Init] ai api key missing, pipeline will not be ready")
	}

	browserCfg := cfg.Browser
	if noBrowser {
		browserCfg.Disabled = true
	}
	fetcher := search.NewBrowserFetcher(browserCfg)

	engines, err := search.NewRegistry().CreateAll(cfg.Search, fetcher)
	if err != nil {
		fetcher.Close()
		return nil, nil, fmt.Errorf("init engines: %w", err)
	}

	return pipeline.New(provider, engines, cfg.Pipeline), fetcher.Close, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
