package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kayz/sonar/internal/config"
	"github.com/kayz/sonar/internal/extract"
	"github.com/kayz/sonar/internal/logger"
)

const defaultSerpAPIBaseURL = "https://serpapi.com/search"

// SerpAPIEngine queries Google through SerpAPI. Rich result blocks (answer
// box, knowledge graph) become a direct answer; otherwise organic results
// become items.
type SerpAPIEngine struct {
	apiKey      string
	baseURL     string
	resultLimit int
	fetcher     Fetcher
	httpClient  *http.Client
}

// serpAPIResponse covers the subset of the SerpAPI payload the engine reads.
type serpAPIResponse struct {
	AnswerBox      *serpAnswerBox      `json:"answer_box"`
	KnowledgeGraph *serpKnowledgeGraph `json:"knowledge_graph"`
	OrganicResults []serpOrganicResult `json:"organic_results"`
}

type serpAnswerBox struct {
	Type             string          `json:"type"`
	Location         string          `json:"location"`
	Weather          string          `json:"weather"`
	Temperature      json.RawMessage `json:"temperature"`
	Unit             string          `json:"unit"`
	Title            string          `json:"title"`
	Stock            string          `json:"stock"`
	Exchange         string          `json:"exchange"`
	Price            json.RawMessage `json:"price"`
	Currency         string          `json:"currency"`
	PreviousClose    json.RawMessage `json:"previous_close"`
	Answer           string          `json:"answer"`
	Snippet          string          `json:"snippet"`
	HighlightedWords []string        `json:"highlighted_words"`
}

type serpKnowledgeGraph struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type serpOrganicResult struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// NewSerpAPIEngine creates the SerpAPI backend.
func NewSerpAPIEngine(cfg config.SearchConfig, fetcher Fetcher) (Engine, error) {
	baseURL := cfg.SerpAPI.BaseURL
	if baseURL == "" {
		baseURL = defaultSerpAPIBaseURL
	}
	limit := cfg.ResultLimit
	if limit <= 0 {
		limit = 1
	}
	return &SerpAPIEngine{
		apiKey:      cfg.SerpAPI.APIKey,
		baseURL:     baseURL,
		resultLimit: limit,
		fetcher:     fetcher,
		httpClient:  &http.Client{Timeout: 20 * time.Second},
	}, nil
}

func (e *SerpAPIEngine) Name() string {
	return EngineSerpAPI
}

func (e *SerpAPIEngine) Search(ctx context.Context, query string) (*Response, error) {
	if e.apiKey == "" {
		return nil, fmt.Errorf("serpapi api key is not configured")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", e.apiKey)
	params.Set("engine", "google")
	params.Set("num", strconv.Itoa(e.resultLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var payload serpAPIResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("serpapi decode: %w", err)
	}

	return e.handleResponse(query, &payload), nil
}

// handleResponse turns the SerpAPI payload into a response, preferring the
// rich blocks over organic results.
func (e *SerpAPIEngine) handleResponse(query string, payload *serpAPIResponse) *Response {
	if box := payload.AnswerBox; box != nil {
		return &Response{Query: query, DirectAnswer: formatAnswerBox(box)}
	}

	if kg := payload.KnowledgeGraph; kg != nil {
		title := orDefault(kg.Title, "정보 없음")
		desc := orDefault(kg.Description, "설명 없음")
		return &Response{
			Query:        query,
			DirectAnswer: fmt.Sprintf("지식 카드\n%s: %s", title, desc),
		}
	}

	items := make([]Result, 0, len(payload.OrganicResults))
	for _, r := range payload.OrganicResults {
		if r.Link == "" {
			continue
		}
		items = append(items, Result{Title: r.Title, Link: r.Link})
		if len(items) >= e.resultLimit {
			break
		}
	}

	if len(items) == 0 {
		logger.Debug("[SerpAPI] no usable results for %q", query)
	}
	return &Response{Query: query, Items: items}
}

func formatAnswerBox(box *serpAnswerBox) string {
	switch {
	case box.Type == "weather_result":
		return fmt.Sprintf("날씨 정보\n지역: %s\n날씨: %s\n기온: %s %s",
			orDefault(box.Location, "정보 없음"),
			orDefault(box.Weather, "정보 없음"),
			rawOrDefault(box.Temperature, "정보 없음"),
			box.Unit)

	case box.Type == "finance_results" && len(box.Price) > 0:
		return fmt.Sprintf("주가 정보\n종목: %s (%s)\n거래소: %s\n현재가: %s %s\n전일 종가: %s",
			orDefault(box.Title, "N/A"),
			orDefault(box.Stock, "N/A"),
			orDefault(box.Exchange, "N/A"),
			rawOrDefault(box.Price, "N/A"),
			box.Currency,
			rawOrDefault(box.PreviousClose, "N/A"))

	default:
		answer := box.Answer
		if answer == "" {
			answer = box.Snippet
		}
		if answer == "" && len(box.HighlightedWords) > 0 {
			answer = strings.Join(box.HighlightedWords, " / ")
		}
		if answer == "" {
			answer = box.Title
		}
		if answer == "" {
			answer = "정보 없음"
		}
		return "간단 정보\n" + answer
	}
}

func (e *SerpAPIEngine) ExtractText(ctx context.Context, pageURL string) (string, error) {
	return e.fetcher.Fetch(ctx, pageURL, "")
}

func (e *SerpAPIEngine) ExtractMainText(html string) string {
	return extract.MainText(html, nil)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// rawOrDefault renders a raw JSON scalar (number or string) for display.
func rawOrDefault(raw json.RawMessage, fallback string) string {
	if len(raw) == 0 {
		return fallback
	}
	s := strings.Trim(string(raw), `"`)
	if s == "" || s == "null" {
		return fallback
	}
	return s
}
