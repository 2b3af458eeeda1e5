package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/kayz/sonar/internal/llm"
	"github.com/kayz/sonar/internal/logger"
	"github.com/kayz/sonar/internal/search"
)

// fallbackEngine is where selection lands when the model output is invalid
// or the call fails. The selection prompt itself tells the model to prefer
// Naver on ambiguity; this constant only covers outright failure.
const fallbackEngine = search.EngineCES

var reNonLetters = regexp.MustCompile(`[^a-zA-Z]+`)

// SelectEngine analyzes the refined query and picks one retrieval backend.
func (p *Pipeline) SelectEngine(ctx context.Context, refined string) string {
	analysis := withFallback(ctx, "analyze", "", func(ctx context.Context) (string, error) {
		return llm.Complete(ctx, p.provider, fmt.Sprintf(analyzePrompt, refined))
	})

	raw, err := llm.Complete(ctx, p.provider, fmt.Sprintf(selectEnginePrompt, refined, analysis))
	if err != nil {
		logger.Error("[Pipeline] engine selection failed: %v", err)
		return fallbackEngine
	}

	name := normalizeEngineName(raw)
	if !validEngineName(name) {
		logger.Warn("[Pipeline] invalid engine name %q, using %s", raw, fallbackEngine)
		return fallbackEngine
	}
	logger.Info("[Pipeline] selected engine: %s", name)
	return name
}

// normalizeEngineName strips everything but letters and lowercases, so
// decorated outputs like "'SerpAPI'." still resolve.
func normalizeEngineName(raw string) string {
	return strings.ToLower(reNonLetters.ReplaceAllString(raw, ""))
}

func validEngineName(name string) bool {
	for _, known := range search.EngineNames {
		if name == known {
			return true
		}
	}
	return false
}
