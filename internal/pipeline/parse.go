package pipeline

import (
	"net/url"
	"regexp"
	"strings"
)

const emptyContentPlaceholder = "결과에서 유효한 내용을 찾지 못했습니다."

var (
	reMarkdownLink = regexp.MustCompile(`\[[^\]]*\]\((https?://[^)\s]+)\)`)
	rePlainLink    = regexp.MustCompile(`https?://[^\s"'<>]+`)
	reSourceSplit  = regexp.MustCompile(`(?is)^(.*?)\n*\s*(?:출처|Sources)\s*:\s*\n*(.*)$`)
	reBodyLabel    = regexp.MustCompile(`(?i)^본문\s*:\s*\n?`)
	reFinalAnswer  = regexp.MustCompile(`(?is)Final Answer:\s*(.*)`)

	// trailing punctuation and brackets that ride along when a URL ends a
	// sentence
	trailingJunk = ")\t\n .,;'\""

	// Korean particles that stick to URLs in model prose
	trailingParticles = []string{
		"에서", "이와", "와", "이과", "과", "으로", "로", "의", "이", "가", "은", "는",
	}
)

// ParseObservation splits model output into body content and source links.
// It never fails: unparseable input comes back as-is with no links.
func ParseObservation(observation string) (string, []string) {
	links := extractLinks(observation)

	contentPart := observation
	if m := reSourceSplit.FindStringSubmatch(observation); m != nil {
		contentPart = strings.TrimSpace(m[1])
	}

	content := strings.TrimSpace(reBodyLabel.ReplaceAllString(contentPart, ""))

	// A Final Answer section wins when it is the tighter statement of the
	// result, or when it is all we have.
	if m := reFinalAnswer.FindStringSubmatch(observation); m != nil {
		possible := strings.TrimSpace(m[1])
		if len(links) > 0 && len(possible) < len(contentPart) {
			content = possible
		} else if len(links) == 0 && possible != "" {
			content = possible
		}
	}

	if content == "" {
		content = emptyContentPlaceholder
	}
	return content, links
}

// extractLinks collects markdown-wrapped URLs first, then bare URLs, in
// first-seen order with duplicates dropped.
func extractLinks(text string) []string {
	var raw []string
	for _, m := range reMarkdownLink.FindAllStringSubmatch(text, -1) {
		raw = append(raw, m[1])
	}

	// Bare URLs, skipping those already captured inside markdown targets.
	markdownSpans := reMarkdownLink.FindAllStringSubmatchIndex(text, -1)
	for _, loc := range rePlainLink.FindAllStringIndex(text, -1) {
		if insideMarkdownTarget(markdownSpans, loc[0]) {
			continue
		}
		raw = append(raw, text[loc[0]:loc[1]])
	}

	var links []string
	seen := make(map[string]struct{})
	for _, link := range raw {
		cleaned := cleanLink(link)
		if cleaned == "" {
			continue
		}
		if _, ok := seen[cleaned]; ok {
			continue
		}
		seen[cleaned] = struct{}{}
		links = append(links, cleaned)
	}
	return links
}

// insideMarkdownTarget reports whether pos falls inside the URL part of any
// markdown link span.
func insideMarkdownTarget(spans [][]int, pos int) bool {
	for _, span := range spans {
		// span[2], span[3] bound the capture group (the URL)
		if len(span) >= 4 && pos >= span[2] && pos < span[3] {
			return true
		}
	}
	return false
}

// cleanLink strips trailing junk a URL picks up from surrounding prose,
// repeating until the string is stable, then validates scheme and host.
func cleanLink(link string) string {
	cleaned := strings.TrimSpace(link)
	for {
		before := cleaned
		cleaned = strings.TrimRight(cleaned, trailingJunk)
		for _, particle := range trailingParticles {
			cleaned = strings.TrimSuffix(cleaned, particle)
		}
		if cleaned == before {
			break
		}
	}

	parsed, err := url.Parse(cleaned)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return cleaned
}
