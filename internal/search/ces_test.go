package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kayz/sonar/internal/config"
)

func TestCESSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("key") != "api-key" || q.Get("cx") != "cse-id" {
			t.Errorf("credentials missing, query = %v", q)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]string{
				{"title": "기술 문서", "link": "https://example.com/doc"},
				{"title": "링크 없음"},
			},
		})
	}))
	defer ts.Close()

	cfg := config.SearchConfig{
		ResultLimit: 1,
		CES: config.CESConfig{
			APIKey:  "api-key",
			CSEID:   "cse-id",
			BaseURL: ts.URL,
		},
	}
	engine, err := NewCESEngine(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	resp, err := engine.Search(context.Background(), "golang context")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Link != "https://example.com/doc" {
		t.Fatalf("items = %v", resp.Items)
	}
}

func TestCESSearchMissingCredentials(t *testing.T) {
	engine, err := NewCESEngine(config.SearchConfig{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Search(context.Background(), "쿼리"); err == nil {
		t.Fatal("expected error without credentials")
	}
}

func TestRegistryCreateAll(t *testing.T) {
	engines, err := NewRegistry().CreateAll(config.SearchConfig{}, nil)
	if err != nil {
		t.Fatalf("CreateAll: %v", err)
	}
	for _, name := range EngineNames {
		engine, ok := engines[name]
		if !ok {
			t.Fatalf("engine %s missing", name)
		}
		if engine.Name() != name {
			t.Errorf("Name() = %q, want %q", engine.Name(), name)
		}
	}
}

func TestRegistryUnknownEngine(t *testing.T) {
	if _, err := NewRegistry().CreateEngine("bing", config.SearchConfig{}, nil); err == nil {
		t.Fatal("expected error for unknown engine")
	}
}
