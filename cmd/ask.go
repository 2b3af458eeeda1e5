package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kayz/sonar/internal/logger"
)

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Resolve one query and print the answer",
	Args:  cobra.MinimumNArgs(1),
	Run:   runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) {
	query := strings.TrimSpace(strings.Join(args, " "))

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal("[Init] config: %v", err)
	}

	p, cleanup, err := buildPipeline(cfg)
	if err != nil {
		logger.Fatal("[Init] pipeline: %v", err)
	}
	defer cleanup()

	fmt.Println(p.Run(context.Background(), query))
}
