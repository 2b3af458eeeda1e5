package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/kayz/sonar/internal/llm"
	"github.com/kayz/sonar/internal/logger"
)

const (
	decisionSearch   = "SEARCH"
	decisionNoSearch = "NO_SEARCH"
)

// Decide determines whether the query needs web retrieval. Anything other
// than a clean NO_SEARCH verdict, including a failed call, means search.
func (p *Pipeline) Decide(ctx context.Context, query string) bool {
	raw, err := llm.Complete(ctx, p.provider, fmt.Sprintf(decidePrompt, query))
	if err != nil {
		logger.Error("[Pipeline] decide failed: %v", err)
		return true
	}

	decision := strings.ToUpper(strings.TrimSpace(raw))
	logger.Info("[Pipeline] decision: %s", decision)
	return decision != decisionNoSearch
}
