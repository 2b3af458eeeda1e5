package pipeline

import (
	"context"
	"strings"

	"github.com/kayz/sonar/internal/logger"
)

// withFallback runs a stage and substitutes fallback when the stage fails
// or produces an empty result. Every pipeline stage degrades this way so a
// single bad LLM call never aborts the run.
func withFallback(ctx context.Context, stage, fallback string, fn func(context.Context) (string, error)) string {
	result, err := fn(ctx)
	if err != nil {
		logger.Error("[Pipeline] %s failed: %v", stage, err)
		return fallback
	}
	result = strings.TrimSpace(result)
	if result == "" {
		logger.Warn("[Pipeline] %s returned empty result", stage)
		return fallback
	}
	return result
}
