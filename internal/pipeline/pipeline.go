// Package pipeline implements the query-resolution flow: decide whether to
// search, refine the query, pick a retrieval backend, run a bounded
// tool-calling loop, then summarize and fact-check the grounded answer.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kayz/sonar/internal/cache"
	"github.com/kayz/sonar/internal/config"
	"github.com/kayz/sonar/internal/llm"
	"github.com/kayz/sonar/internal/logger"
	"github.com/kayz/sonar/internal/search"
)

const (
	initErrorAnswer    = "챗봇 초기화 오류 발생."
	noSearchFailure    = "간단 답변 생성 에러"
	missingAgentAnswer = "(Agent 최종 답변 없음)"

	// answer caps for the direct-answer paths, in runes
	noSearchAnswerLimit = 50
	fallbackAnswerLimit = 20
)

// Pipeline wires the provider, the retrieval backends and the conversation
// memory into one query-resolution flow.
type Pipeline struct {
	provider llm.Provider
	engines  map[string]search.Engine
	memory   *Memory
	cache    *cache.TTLCache
	cfg      config.PipelineConfig
}

// New builds a pipeline. A nil provider or missing engines leave the
// pipeline constructed but not ready; Run then returns the init error.
func New(provider llm.Provider, engines map[string]search.Engine, cfg config.PipelineConfig) *Pipeline {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 5
	}
	if cfg.EvidenceLimit <= 0 {
		cfg.EvidenceLimit = 2000
	}
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 2
	}
	return &Pipeline{
		provider: provider,
		engines:  engines,
		memory:   NewMemory(),
		cache:    cache.New(cfg.CacheSize, time.Duration(cfg.CacheTTLMs)*time.Millisecond),
		cfg:      cfg,
	}
}

// Ready reports whether every component needed by Run is in place.
func (p *Pipeline) Ready() bool {
	if p.provider == nil {
		return false
	}
	for _, name := range search.EngineNames {
		if p.engines[name] == nil {
			return false
		}
	}
	return true
}

// Memory exposes the conversation log.
func (p *Pipeline) Memory() *Memory {
	return p.memory
}

// Run resolves one user query to a final answer string. It never returns
// an error: every failure degrades to an answer the user can read.
func (p *Pipeline) Run(ctx context.Context, query string) string {
	if !p.Ready() {
		logger.Error("[Pipeline] not ready: missing provider or engines")
		return initErrorAnswer
	}

	if !p.Decide(ctx, query) {
		return p.answerWithoutSearch(ctx, query, noSearchAnswerLimit)
	}

	refined := p.Refine(ctx, query)
	logger.Info("[Pipeline] refined query: %s", refined)

	engineName := p.SelectEngine(ctx, refined)
	engine := p.engines[engineName]
	if engine == nil {
		engine = p.engines[fallbackEngine]
	}
	if engine == nil {
		logger.Error("[Pipeline] no engine available, answering without search")
		return p.answerWithoutSearch(ctx, query, fallbackAnswerLimit)
	}

	agentRes := p.runAgent(ctx, engine, refined)
	p.memory.AddUser(query)

	// The newest retrieval step grounds the fact check; when no tool ran
	// the model's own answer is all the evidence there is.
	evidence := agentRes.final
	var links []string
	if step, ok := lastRetrieval(agentRes.trace); ok {
		evidence = step.observation
		links = step.links
	} else if len(agentRes.trace) == 0 {
		logger.Warn("[Pipeline] no retrieval step recorded")
	}

	extracted := missingAgentAnswer
	if agentRes.final != "" {
		extracted, _ = ParseObservation(agentRes.final)
	}

	summary := p.Summarize(ctx, extracted, refined)
	answer := p.FactCheck(ctx, summary, evidence)

	if unique := dedupeLinks(links); len(unique) > 0 {
		var lines []string
		for _, link := range unique {
			lines = append(lines, "- "+link)
		}
		answer += "\n\n출처:\n" + strings.Join(lines, "\n")
	} else {
		logger.Info("[Pipeline] no source links to attach")
	}

	p.memory.AddAssistant(answer)
	logger.Info("[Pipeline] done, answer length: %d", len(answer))
	return answer
}

// answerWithoutSearch produces a short direct answer and records the turn.
func (p *Pipeline) answerWithoutSearch(ctx context.Context, query string, limit int) string {
	p.memory.AddUser(query)

	raw, err := llm.Complete(ctx, p.provider, fmt.Sprintf(noSearchPrompt, query))
	if err != nil {
		logger.Error("[Pipeline] direct answer failed: %v", err)
		return noSearchFailure
	}

	answer := strings.TrimSpace(raw)
	if runes := []rune(answer); len(runes) > limit {
		answer = string(runes[:limit])
	}

	p.memory.AddAssistant(answer)
	return answer
}
