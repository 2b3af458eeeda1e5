package search

import "context"

// The fixed engine set. Every selection resolves to one of these.
const (
	EngineSerpAPI = "serpapi"
	EngineNaver   = "naver"
	EngineCES     = "ces"
)

// EngineNames lists the fixed engine set in precedence-rule order.
var EngineNames = []string{EngineSerpAPI, EngineNaver, EngineCES}

// Result is a single search hit. Items without a link are discarded by the
// engines before they reach the pipeline.
type Result struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Response is what an engine returns for one query. When DirectAnswer is
// non-empty the engine produced a complete answer (answer box, knowledge
// card) and Items is empty: no page extraction is needed.
type Response struct {
	Query        string   `json:"query"`
	Items        []Result `json:"items"`
	DirectAnswer string   `json:"direct_answer,omitempty"`
}

// Engine is one retrieval backend. All three backends are interchangeable
// behind this contract; the pipeline never depends on a concrete engine.
type Engine interface {
	Name() string
	// Search runs the query and returns result items or a direct answer.
	Search(ctx context.Context, query string) (*Response, error)
	// ExtractText fetches the raw page markup for a result link.
	ExtractText(ctx context.Context, url string) (string, error)
	// ExtractMainText reduces raw markup to main body text.
	ExtractMainText(html string) string
}

// Fetcher retrieves raw page markup for a URL. waitSelector, when non-empty,
// names an element that must be present before the page counts as loaded.
type Fetcher interface {
	Fetch(ctx context.Context, url, waitSelector string) (string, error)
}
