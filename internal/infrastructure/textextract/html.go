package textextract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const noiseSelectors = "nav, footer, header, script, style, noscript, svg, form, .ad, .ads, .advertisement, .sidebar, .cookie-banner, .popup"

// blockSelectors get a trailing newline so paragraphs stay on their own line.
const blockSelectors = "p, div, li, br, h1, h2, h3, h4, h5, h6, tr, section, article"

// JobPostingSelectors are tried in order; the first match is the posting body.
var JobPostingSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	"#job-content",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

// HTMLText returns the visible text of the first element matching one of
// contentSelectors, falling back to body. Noise such as navigation and
// scripts is dropped.
func HTMLText(html string, contentSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find(noiseSelectors).Remove()
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	var main *goquery.Selection
	for _, sel := range contentSelectors {
		if s := doc.Find(sel); s.Length() > 0 {
			main = s.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}
	return main.Text(), nil
}

// HTMLTitle returns og:title, then <title>, then the first h1.
func HTMLTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	if v, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if v := strings.TrimSpace(doc.Find("title").First().Text()); v != "" {
		return v
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}
