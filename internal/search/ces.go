package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kayz/sonar/internal/config"
	"github.com/kayz/sonar/internal/extract"
)

const defaultCESBaseURL = "https://www.googleapis.com/customsearch/v1"

// CESEngine queries the Google Custom Search JSON API. It is the default
// backend when engine selection fails.
type CESEngine struct {
	apiKey      string
	cseID       string
	baseURL     string
	resultLimit int
	fetcher     Fetcher
	httpClient  *http.Client
}

type cesSearchResponse struct {
	Items []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	} `json:"items"`
}

// NewCESEngine creates the Custom Search backend.
func NewCESEngine(cfg config.SearchConfig, fetcher Fetcher) (Engine, error) {
	baseURL := cfg.CES.BaseURL
	if baseURL == "" {
		baseURL = defaultCESBaseURL
	}
	limit := cfg.ResultLimit
	if limit <= 0 {
		limit = 1
	}
	return &CESEngine{
		apiKey:      cfg.CES.APIKey,
		cseID:       cfg.CES.CSEID,
		baseURL:     baseURL,
		resultLimit: limit,
		fetcher:     fetcher,
		httpClient:  &http.Client{Timeout: 20 * time.Second},
	}, nil
}

func (e *CESEngine) Name() string {
	return EngineCES
}

func (e *CESEngine) Search(ctx context.Context, query string) (*Response, error) {
	if e.apiKey == "" || e.cseID == "" {
		return nil, fmt.Errorf("custom search credentials are not configured")
	}

	params := url.Values{}
	params.Set("key", e.apiKey)
	params.Set("cx", e.cseID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(e.resultLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("custom search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("custom search http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var payload cesSearchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("custom search decode: %w", err)
	}

	items := make([]Result, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.Link == "" {
			continue
		}
		items = append(items, Result{Title: item.Title, Link: item.Link})
	}
	return &Response{Query: query, Items: items}, nil
}

func (e *CESEngine) ExtractText(ctx context.Context, pageURL string) (string, error) {
	return e.fetcher.Fetch(ctx, pageURL, "")
}

func (e *CESEngine) ExtractMainText(html string) string {
	return extract.MainText(html, nil)
}
