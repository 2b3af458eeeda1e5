package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kayz/sonar/internal/config"
	"github.com/kayz/sonar/internal/llm"
	"github.com/kayz/sonar/internal/pipeline"
	"github.com/kayz/sonar/internal/search"
)

type fakeProvider struct {
	responses []string
}

func (f *fakeProvider) Chat(ctx context.Context, req llm.ChatRequest) (llm.ChatResponse, error) {
	if len(f.responses) == 0 {
		return llm.ChatResponse{FinishReason: "stop"}, nil
	}
	content := f.responses[0]
	f.responses = f.responses[1:]
	return llm.ChatResponse{Content: content, FinishReason: "stop"}, nil
}

func (f *fakeProvider) ModelName() string { return "fake-model" }

type fakeEngine struct{ name string }

func (e *fakeEngine) Name() string { return e.name }

func (e *fakeEngine) Search(ctx context.Context, query string) (*search.Response, error) {
	return &search.Response{}, nil
}

func (e *fakeEngine) ExtractText(ctx context.Context, url string) (string, error) {
	return "", nil
}

func (e *fakeEngine) ExtractMainText(html string) string { return "" }

func readyPipeline(responses ...string) *pipeline.Pipeline {
	engines := map[string]search.Engine{
		search.EngineSerpAPI: &fakeEngine{name: search.EngineSerpAPI},
		search.EngineNaver:   &fakeEngine{name: search.EngineNaver},
		search.EngineCES:     &fakeEngine{name: search.EngineCES},
	}
	return pipeline.New(&fakeProvider{responses: responses}, engines, config.PipelineConfig{})
}

func postProcess(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestProcessEmptyQuery(t *testing.T) {
	s := New(readyPipeline())

	if w := postProcess(t, s, `{"query":"  "}`); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if w := postProcess(t, s, `not json`); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestProcessPipelineNotReady(t *testing.T) {
	s := New(pipeline.New(nil, nil, config.PipelineConfig{}))

	if w := postProcess(t, s, `{"query":"질문"}`); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestProcessOK(t *testing.T) {
	// decide says no search, then the direct answer
	s := New(readyPipeline("NO_SEARCH", "짧은 답변"))

	w := postProcess(t, s, `{"query":"파이썬이 뭐야?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp AnswerResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Answer != "짧은 답변" {
		t.Fatalf("answer = %q", resp.Answer)
	}
}

func TestHealth(t *testing.T) {
	okServer := New(readyPipeline())
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	okServer.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	downServer := New(pipeline.New(nil, nil, config.PipelineConfig{}))
	w = httptest.NewRecorder()
	downServer.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}
