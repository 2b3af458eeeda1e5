package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/kayz/sonar/internal/llm"
	"github.com/kayz/sonar/internal/logger"
)

// Rewrite intents. Each query is routed to exactly one before rewriting.
const (
	intentKeyword  = "keyword_rewrite"  // directive requests: how-to, install, find
	intentQuestion = "question_rewrite" // interrogatives: why, how, what, when
	intentGeneral  = "general_rewrite"  // exploration: cases, trends, comparisons
	intentBasic    = "basic_rewrite"    // short, malformed or unclassifiable
)

// intentKeywords maps each intent to the query keywords that score for it.
var intentKeywords = map[string][]string{
	intentKeyword:  {"방법", "팁", "찾기", "구매", "설치", "만들기", "요청"},
	intentQuestion: {"왜", "어떻게", "무엇", "언제", "어디서", "정의", "원인", "이유", "비교"},
	intentGeneral:  {"사례", "추천", "비교", "동향", "트렌드", "종류", "영향", "전망"},
}

// intentDescriptions feed the LLM router when keyword scoring is inconclusive.
var intentDescriptions = []struct {
	name        string
	description string
}{
	{intentKeyword, "쿼리가 '~하는 법', '설치 방법', '구매처 찾기' 등 **구체적인 행동이나 대상에 대한 직접적인 정보 요청**일 때 사용. 결과는 간결한 키워드/명사구 형태."},
	{intentQuestion, "쿼리가 '왜', '어떻게', '무엇', '언제', '차이점' 등 **명확한 의문사를 포함하거나 원인/이유/정의 등을 묻는 질문**일 때 사용. 결과는 질문의 핵심 주제를 나타내는 검색 구문 형태."},
	{intentGeneral, "쿼리가 특정 주제에 대한 **사례, 추천, 비교, 최신 동향, 전반적인 정보 탐색** 등 넓은 범위의 정보를 찾거나 주제가 다소 모호할 때 사용. 결과는 탐색 의도를 반영하여 약간 구체화된 문장 형태."},
	{intentBasic, "쿼리가 **매우 짧거나, 의미가 불명확하거나, 문법 오류가 심하거나, 위의 다른 유형으로 분류하기 어려울 때** 사용하는 최종 안전 장치. 최소한의 정제만 거친 키워드 형태로 재작성."},
}

// rewritePrompts maps intents to their rewrite templates.
var rewritePrompts = map[string]string{
	intentKeyword:  rewriteKeywordPrompt,
	intentQuestion: rewriteQuestionPrompt,
	intentGeneral:  rewriteGeneralPrompt,
	intentBasic:    rewriteBasicPrompt,
}

// Refine rewrites the query into a search phrase suited to its intent.
// Any stage failure falls back to the original query.
func (p *Pipeline) Refine(ctx context.Context, query string) string {
	intent := p.routeIntent(ctx, query)
	logger.Info("[Pipeline] rewrite intent: %s", intent)

	prompt, ok := rewritePrompts[intent]
	if !ok {
		prompt = rewriteBasicPrompt
	}

	return withFallback(ctx, "refine", query, func(ctx context.Context) (string, error) {
		return llm.Complete(ctx, p.provider, fmt.Sprintf(prompt, query))
	})
}

// routeIntent picks the rewrite intent. Keyword scoring decides when one
// intent clearly wins; ties and zero scores go to the LLM router.
func (p *Pipeline) routeIntent(ctx context.Context, query string) string {
	if intent, ok := scoreIntent(query); ok {
		return intent
	}
	return p.routeIntentLLM(ctx, query)
}

// scoreIntent counts keyword hits per intent. It reports ok only when a
// single intent has the strictly highest score.
func scoreIntent(query string) (string, bool) {
	lowered := strings.ToLower(query)

	best, bestScore, tied := "", 0, false
	for _, intent := range []string{intentKeyword, intentQuestion, intentGeneral} {
		score := 0
		for _, kw := range intentKeywords[intent] {
			if strings.Contains(lowered, kw) {
				score++
			}
		}
		switch {
		case score > bestScore:
			best, bestScore, tied = intent, score, false
		case score == bestScore && score > 0:
			tied = true
		}
	}

	if bestScore == 0 || tied {
		return "", false
	}
	return best, true
}

func (p *Pipeline) routeIntentLLM(ctx context.Context, query string) string {
	var destinations []string
	for _, info := range intentDescriptions {
		destinations = append(destinations, fmt.Sprintf("%s: %s", info.name, info.description))
	}

	raw, err := llm.Complete(ctx, p.provider,
		fmt.Sprintf(routerPrompt, strings.Join(destinations, "\n"), query))
	if err != nil {
		logger.Error("[Pipeline] intent router failed: %v", err)
		return intentBasic
	}

	candidate := strings.ToLower(strings.TrimSpace(raw))
	for name := range rewritePrompts {
		if strings.Contains(candidate, name) {
			return name
		}
	}
	logger.Warn("[Pipeline] unknown intent %q, using fallback", candidate)
	return intentBasic
}
