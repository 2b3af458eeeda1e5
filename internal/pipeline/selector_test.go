package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/kayz/sonar/internal/llm"
	"github.com/kayz/sonar/internal/search"
)

func TestNormalizeEngineName(t *testing.T) {
	cases := map[string]string{
		"SerpAPI":   "serpapi",
		"'Naver'.":  "naver",
		" CES \n":   "ces",
		"엔진: CES":   "ces",
		"1. Naver":  "naver",
	}
	for input, want := range cases {
		if got := normalizeEngineName(input); got != want {
			t.Errorf("normalizeEngineName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSelectEngine(t *testing.T) {
	provider := &fakeProvider{responses: []llm.ChatResponse{
		text("- 최신성 요구 수준: 높음"),
		text("SerpAPI"),
	}}
	p := newTestPipeline(provider, &fakeEngine{})

	if got := p.SelectEngine(context.Background(), "엔비디아 주가"); got != search.EngineSerpAPI {
		t.Fatalf("SelectEngine = %q", got)
	}
}

func TestSelectEngineInvalidNameFallsBack(t *testing.T) {
	provider := &fakeProvider{responses: []llm.ChatResponse{
		text("분석 결과"),
		text("Google"),
	}}
	p := newTestPipeline(provider, &fakeEngine{})

	if got := p.SelectEngine(context.Background(), "쿼리"); got != fallbackEngine {
		t.Fatalf("SelectEngine = %q, want %q", got, fallbackEngine)
	}
}

func TestSelectEngineErrorFallsBack(t *testing.T) {
	provider := &fakeProvider{err: errors.New("boom")}
	p := newTestPipeline(provider, &fakeEngine{})

	if got := p.SelectEngine(context.Background(), "쿼리"); got != fallbackEngine {
		t.Fatalf("SelectEngine = %q, want %q", got, fallbackEngine)
	}
}
