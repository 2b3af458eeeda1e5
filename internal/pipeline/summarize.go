package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/kayz/sonar/internal/llm"
	"github.com/kayz/sonar/internal/logger"
)

// contentErrorMarkers flag extracted content that is an error or empty
// result rather than real evidence. Such content is never summarized.
var contentErrorMarkers = []string{"오류", "실패", "없음", "불가", "죄송합니다"}

func containsAny(text string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// Summarize condenses the extracted content into an answer for the refined
// query. Content that looks like an error passes through unchanged, and
// summarization failure keeps the original content.
func (p *Pipeline) Summarize(ctx context.Context, content, refined string) string {
	if content == "" || containsAny(content, contentErrorMarkers) {
		logger.Info("[Pipeline] summarize skipped")
		return content
	}

	summary := withFallback(ctx, "summarize", content, func(ctx context.Context) (string, error) {
		return llm.Complete(ctx, p.provider, fmt.Sprintf(summarizePrompt, refined, content))
	})
	logger.Info("[Pipeline] summary length: %d", len(summary))
	return summary
}
