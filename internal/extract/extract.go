// Package extract reduces raw page markup to cleaned main-body text.
package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/kayz/sonar/internal/logger"
)

var (
	reTags       = regexp.MustCompile(`<[^>]+>`)
	reWhitespace = regexp.MustCompile(`\s+`)
	// keeps word characters, Hangul and basic sentence punctuation
	reSpecial = regexp.MustCompile(`[^\w가-힣\s.,?!:/\-]`)

	reSmartEditorText = regexp.MustCompile(`(?s)SE-TEXT\s*\{(.*?)\}\s*SE-TEXT`)
	rePostViewArea    = regexp.MustCompile(`(?s)<div[^>]+id="postViewArea"[^>]*>(.*?)</div>`)

	noiseSelectors = "script, style, noscript, iframe, svg, header, footer, form, nav, aside"
)

// MainText extracts main body text from raw markup. Selectors, when given,
// are tried first (site-specific containers); then readability; then a
// visible-text sweep of the whole document.
func MainText(html string, selectors []string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		for _, sel := range selectors {
			if container := doc.Find(sel).First(); container.Length() > 0 {
				if text := CleanText(container.Text()); text != "" {
					return text
				}
			}
		}
	}

	if text := readabilityText(html); text != "" {
		return text
	}

	return visibleText(html)
}

func readabilityText(html string) string {
	article, err := readability.FromReader(strings.NewReader(html), &url.URL{})
	if err != nil {
		logger.Debug("[Extract] readability failed: %v", err)
		return ""
	}
	return CleanText(article.TextContent)
}

// visibleText strips boilerplate containers and collects the remaining text.
func visibleText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return CleanText(reTags.ReplaceAllString(html, " "))
	}
	doc.Find(noiseSelectors).Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		return CleanText(doc.Text())
	}

	var lines []string
	for _, line := range strings.Split(body.Text(), "\n") {
		if line = CleanText(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// CleanText normalizes unicode junk and collapses runs of whitespace.
func CleanText(text string) string {
	text = strings.NewReplacer("\u200d", "", "\u00a0", " ", "\ufeff", "").Replace(text)
	return strings.TrimSpace(reWhitespace.ReplaceAllString(text, " "))
}

// Preprocess applies generic cleanup to extracted text and caps its length.
// Naver blog pages get SmartEditor body isolation before the generic pass.
func Preprocess(text, sourceURL string, limit int) string {
	if text == "" {
		return ""
	}

	if strings.Contains(sourceURL, "blog.naver.com") {
		if body := naverBlogBody(text); body != "" {
			text = body
		}
	}

	cleaned := reTags.ReplaceAllString(text, " ")
	cleaned = reSpecial.ReplaceAllString(cleaned, "")
	cleaned = CleanText(cleaned)

	if limit > 0 {
		if runes := []rune(cleaned); len(runes) > limit {
			cleaned = string(runes[:limit])
		}
	}
	return cleaned
}

// naverBlogBody pulls the post body out of SmartEditor markup. Returns ""
// when the structure is not recognized.
func naverBlogBody(text string) string {
	if blocks := reSmartEditorText.FindAllStringSubmatch(text, -1); len(blocks) > 0 {
		var parts []string
		for _, m := range blocks {
			if b := strings.TrimSpace(reTags.ReplaceAllString(m[1], "")); b != "" {
				parts = append(parts, b)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "\n")
		}
	}

	if m := rePostViewArea.FindStringSubmatch(text); m != nil {
		return reTags.ReplaceAllString(m[1], "")
	}
	return ""
}
