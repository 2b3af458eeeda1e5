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

const (
	defaultNaverBaseURL = "https://openapi.naver.com/v1/search"

	// naverFallbackService is the general web-document category used when no
	// keyword matches the query.
	naverFallbackService = "webkr"
)

// naverServiceKeywords maps an OpenAPI search category to the query keywords
// that select it.
var naverServiceKeywords = map[string][]string{
	"news":        {"뉴스", "기사", "보도", "언론"},
	"book":        {"책", "도서", "출판"},
	"encyc":       {"백과사전", "사전", "백과"},
	"cafearticle": {"카페", "카페글", "카페 포스트"},
	"kin":         {"지식인", "질문", "답변"},
	"webkr":       {"웹문서", "사이트", "페이지"},
	"image":       {"이미지", "사진", "그림"},
	"shop":        {"쇼핑", "상품", "조회"},
	"doc":         {"전문자료", "논문", "리포트"},
	"adult":       {"성인", "19금", "성인물"},
	"errata":      {"오타", "교정", "정정"},
}

// naverSelectors lists site-specific body containers, tried in order before
// the generic extraction ladder.
var naverSelectors = []string{
	"#newsEndContents",
	"#articleBodyContents",
	"article",
	".news_read_area",
	".article_body",
	".news-content",
	"#content",
	".post-content",
}

// NaverEngine queries the Naver OpenAPI, routing each query to a search
// category by keyword.
type NaverEngine struct {
	clientID     string
	clientSecret string
	baseURL      string
	resultLimit  int
	fetcher      Fetcher
	httpClient   *http.Client
}

type naverSearchResponse struct {
	Items []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	} `json:"items"`
}

// NewNaverEngine creates the Naver backend.
func NewNaverEngine(cfg config.SearchConfig, fetcher Fetcher) (Engine, error) {
	baseURL := cfg.Naver.BaseURL
	if baseURL == "" {
		baseURL = defaultNaverBaseURL
	}
	limit := cfg.ResultLimit
	if limit <= 0 {
		limit = 3
	}
	if cfg.Naver.ClientID == "" || cfg.Naver.ClientSecret == "" {
		logger.Warn("[Naver] client credentials are not configured")
	}
	return &NaverEngine{
		clientID:     cfg.Naver.ClientID,
		clientSecret: cfg.Naver.ClientSecret,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		resultLimit:  limit,
		fetcher:      fetcher,
		httpClient:   &http.Client{Timeout: 20 * time.Second},
	}, nil
}

func (e *NaverEngine) Name() string {
	return EngineNaver
}

// DetectService returns the search category for a query. The first category
// whose keyword appears in the query wins; map iteration order makes ties
// nondeterministic but the keyword sets do not overlap in practice.
func (e *NaverEngine) DetectService(query string) string {
	text := strings.ToLower(query)
	for svc, keywords := range naverServiceKeywords {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				return svc
			}
		}
	}
	return naverFallbackService
}

func (e *NaverEngine) Search(ctx context.Context, query string) (*Response, error) {
	if e.clientID == "" || e.clientSecret == "" {
		return nil, fmt.Errorf("naver client credentials are not configured")
	}

	service := e.DetectService(query)
	endpoint := fmt.Sprintf("%s/%s.json", e.baseURL, service)

	params := url.Values{}
	params.Set("query", query)
	params.Set("display", strconv.Itoa(e.resultLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Naver-Client-Id", e.clientID)
	req.Header.Set("X-Naver-Client-Secret", e.clientSecret)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("naver request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("naver http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var payload naverSearchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("naver decode: %w", err)
	}

	items := make([]Result, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.Link == "" {
			continue
		}
		items = append(items, Result{
			Title: extract.CleanText(stripTitleTags(item.Title)),
			Link:  item.Link,
		})
	}

	logger.Debug("[Naver] service=%s query=%q results=%d", service, query, len(items))
	return &Response{Query: query, Items: items}, nil
}

// ExtractText fetches the page, waiting for the container Naver renders
// late: blogs load the post in an iframe and news injects the article body.
func (e *NaverEngine) ExtractText(ctx context.Context, pageURL string) (string, error) {
	waitSelector := ""
	switch {
	case strings.Contains(pageURL, "blog.naver.com"):
		waitSelector = "iframe"
	case strings.Contains(pageURL, "news.naver.com"), strings.Contains(pageURL, "n.news.naver.com"):
		waitSelector = "#newsEndContents, #articleBodyContents"
	}
	return e.fetcher.Fetch(ctx, pageURL, waitSelector)
}

func (e *NaverEngine) ExtractMainText(html string) string {
	return extract.MainText(html, naverSelectors)
}

// stripTitleTags drops the <b> markup the OpenAPI embeds in titles.
func stripTitleTags(title string) string {
	for {
		start := strings.Index(title, "<")
		if start < 0 {
			return title
		}
		end := strings.Index(title[start:], ">")
		if end < 0 {
			return title
		}
		title = title[:start] + title[start+end+1:]
	}
}
