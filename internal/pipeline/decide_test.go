package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/kayz/sonar/internal/llm"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		verdict string
		search  bool
	}{
		{"SEARCH", true},
		{"NO_SEARCH", false},
		{"no_search", false},
		{" NO_SEARCH \n", false},
		{"뭔가 다른 출력", true},
	}

	for _, tc := range cases {
		provider := &fakeProvider{responses: []llm.ChatResponse{text(tc.verdict)}}
		p := newTestPipeline(provider, &fakeEngine{})
		if got := p.Decide(context.Background(), "질문"); got != tc.search {
			t.Errorf("Decide with verdict %q = %v, want %v", tc.verdict, got, tc.search)
		}
	}
}

func TestDecideErrorMeansSearch(t *testing.T) {
	provider := &fakeProvider{err: errors.New("boom")}
	p := newTestPipeline(provider, &fakeEngine{})

	if !p.Decide(context.Background(), "질문") {
		t.Fatal("failed decision must default to search")
	}
}
