package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kayz/sonar/internal/cache"
	"github.com/kayz/sonar/internal/extract"
	"github.com/kayz/sonar/internal/logger"
	"github.com/kayz/sonar/internal/search"
)

const (
	noResultsObservation = "검색 결과 없음."
	noContentObservation = "관련 내용을 찾거나 추출하지 못했습니다."
)

// retrieval is the outcome of one retrieval tool run: the observation text
// handed to the reasoning loop and the source links behind it.
type retrieval struct {
	observation string
	links       []string
}

// retrieve runs one search and extracts content from every result page.
// It never returns an error: failures become observation text so the
// reasoning loop can react to them.
func (p *Pipeline) retrieve(ctx context.Context, engine search.Engine, query string) retrieval {
	timeout := time.Duration(p.cfg.SearchTimeoutS) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := engine.Search(ctx, query)
	if err != nil {
		logger.Error("[Retrieve] %s search failed: %v", engine.Name(), err)
		return retrieval{observation: fmt.Sprintf("%s 검색 처리 중 오류 발생: %v", engine.Name(), err)}
	}

	// Rich result blocks answer the query outright, no page extraction.
	if resp.DirectAnswer != "" {
		return retrieval{observation: resp.DirectAnswer}
	}
	if len(resp.Items) == 0 {
		return retrieval{observation: noResultsObservation}
	}

	texts, links := p.extractItems(ctx, engine, resp.Items)
	return retrieval{
		observation: formatObservation(texts, links),
		links:       links,
	}
}

// extractItems fetches and cleans every result page concurrently, keeping
// result order and dropping failed items.
func (p *Pipeline) extractItems(ctx context.Context, engine search.Engine, items []search.Result) ([]string, []string) {
	type extracted struct {
		text string
		link string
	}
	results := make([]extracted, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item search.Result) {
			defer wg.Done()
			if text := p.extractItem(ctx, engine, item); text != "" {
				results[i] = extracted{text: text, link: item.Link}
			}
		}(i, item)
	}
	wg.Wait()

	var texts, links []string
	for _, r := range results {
		if r.text != "" {
			texts = append(texts, r.text)
			links = append(links, r.link)
		}
	}
	return texts, links
}

// extractItem turns one search result into a labeled document block, or ""
// when the page yields nothing usable.
func (p *Pipeline) extractItem(ctx context.Context, engine search.Engine, item search.Result) string {
	if item.Link == "" {
		return ""
	}

	key := cache.Key(engine.Name(), item.Link)
	if cached, ok := p.cache.Get(key); ok {
		logger.Debug("[Retrieve] cache hit: %s", item.Link)
		return cached
	}

	html, err := engine.ExtractText(ctx, item.Link)
	if err != nil || html == "" {
		logger.Warn("[Retrieve] extract failed for %s: %v", item.Link, err)
		return ""
	}

	mainText := engine.ExtractMainText(html)
	processed := extract.Preprocess(mainText, item.Link, p.cfg.ContentLimit)
	if processed == "" {
		logger.Warn("[Retrieve] empty content after preprocess: %s", item.Link)
		return ""
	}

	block := fmt.Sprintf("--- 문서 (%s) ---\n%s", item.Title, processed)
	p.cache.Set(key, block)
	return block
}

// formatObservation renders extracted documents and their sources into the
// observation string. The sources section is omitted when no links survive.
func formatObservation(texts, links []string) string {
	if len(texts) == 0 {
		return noContentObservation
	}

	content := strings.Join(texts, "\n\n")
	unique := dedupeLinks(links)
	if len(unique) == 0 {
		return fmt.Sprintf("본문:\n%s", content)
	}

	var lines []string
	for _, link := range unique {
		lines = append(lines, "- "+link)
	}
	return fmt.Sprintf("본문:\n%s\n\n출처:\n%s", content, strings.Join(lines, "\n"))
}

// dedupeLinks removes empty and repeated links, preserving first-seen order.
func dedupeLinks(links []string) []string {
	seen := make(map[string]struct{}, len(links))
	var out []string
	for _, link := range links {
		if link == "" {
			continue
		}
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}
		out = append(out, link)
	}
	return out
}
