package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kayz/sonar/internal/config"
	"github.com/kayz/sonar/internal/llm"
)

func TestFactCheckAcceptsCleanOutput(t *testing.T) {
	provider := &fakeProvider{responses: []llm.ChatResponse{
		text("검증을 거친 최종 답변"),
	}}
	p := newTestPipeline(provider, &fakeEngine{})

	got := p.FactCheck(context.Background(), "요약", "검색된 본문")

	if got != "검증을 거친 최종 답변" {
		t.Fatalf("FactCheck = %q", got)
	}
}

func TestFactCheckRejectsFailureMarkers(t *testing.T) {
	for _, marker := range factCheckFailureMarkers {
		provider := &fakeProvider{responses: []llm.ChatResponse{
			text("답변에 " + marker + " 포함"),
		}}
		p := newTestPipeline(provider, &fakeEngine{})

		if got := p.FactCheck(context.Background(), "요약", "본문"); got != "요약" {
			t.Errorf("marker %q: FactCheck = %q, want summary kept", marker, got)
		}
	}
}

func TestFactCheckErrorKeepsSummary(t *testing.T) {
	provider := &fakeProvider{err: errors.New("boom")}
	p := newTestPipeline(provider, &fakeEngine{})

	if got := p.FactCheck(context.Background(), "요약", "본문"); got != "요약" {
		t.Fatalf("FactCheck = %q, want summary", got)
	}
}

func TestFactCheckCapsEvidence(t *testing.T) {
	provider := &fakeProvider{responses: []llm.ChatResponse{text("통과한 답변")}}
	p := New(provider, testEngines(&fakeEngine{}), config.PipelineConfig{EvidenceLimit: 10})

	long := strings.Repeat("가", 100)
	p.FactCheck(context.Background(), "요약", long)

	prompt := provider.calls[0].Messages[0].Content
	if strings.Contains(prompt, strings.Repeat("가", 11)) {
		t.Fatal("evidence not capped in prompt")
	}
	if !strings.Contains(prompt, strings.Repeat("가", 10)) {
		t.Fatal("capped evidence missing from prompt")
	}
}

func TestFactCheckEmptyEvidencePlaceholder(t *testing.T) {
	provider := &fakeProvider{responses: []llm.ChatResponse{text("통과한 답변")}}
	p := newTestPipeline(provider, &fakeEngine{})

	p.FactCheck(context.Background(), "요약", "   ")

	prompt := provider.calls[0].Messages[0].Content
	if !strings.Contains(prompt, noEvidencePlaceholder) {
		t.Fatal("missing evidence placeholder in prompt")
	}
}

func TestSummarizeSkipsErrorContent(t *testing.T) {
	provider := &fakeProvider{}
	p := newTestPipeline(provider, &fakeEngine{})

	content := "검색 처리 중 오류 발생"
	if got := p.Summarize(context.Background(), content, "쿼리"); got != content {
		t.Fatalf("Summarize = %q, want passthrough", got)
	}
	if len(provider.calls) != 0 {
		t.Fatal("summarize should not call the provider for error content")
	}
}

func TestSummarizeErrorKeepsContent(t *testing.T) {
	provider := &fakeProvider{err: errors.New("boom")}
	p := newTestPipeline(provider, &fakeEngine{})

	if got := p.Summarize(context.Background(), "정상 본문", "쿼리"); got != "정상 본문" {
		t.Fatalf("Summarize = %q", got)
	}
}
