package scraper

import (
	"encoding/json"
	"strings"

	"github.com/26nm/careerpath/internal/infrastructure/textextract"

	"github.com/PuerkitoBio/goquery"
)

// jobPostingLD is the subset of schema.org/JobPosting that job boards embed
// as JSON-LD.
type jobPostingLD struct {
	Type               any    `json:"@type"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	HiringOrganization struct {
		Name string `json:"name"`
	} `json:"hiringOrganization"`
	JobLocation json.RawMessage `json:"jobLocation"`
}

type jobLocationLD struct {
	Address struct {
		Locality string `json:"addressLocality"`
		Region   string `json:"addressRegion"`
		Country  any    `json:"addressCountry"`
	} `json:"address"`
}

// parsePosting prefers structured JSON-LD and falls back to the visible page
// text.
func parsePosting(pageURL, html string) Posting {
	p := Posting{URL: pageURL}

	if ld, ok := findJobPostingLD(html); ok {
		p.Title = strings.TrimSpace(ld.Title)
		p.Company = strings.TrimSpace(ld.HiringOrganization.Name)
		p.Location = ld.location()
		if desc, err := textextract.HTMLText("<body>" + ld.Description + "</body>"); err == nil {
			p.Description = textextract.Clean(desc)
		}
	}

	p.Title = pickNonEmpty(p.Title, textextract.HTMLTitle(html))
	p.Company = pickNonEmpty(p.Company, metaContent(html, `meta[property="og:site_name"]`))
	if p.Description == "" {
		if text, err := textextract.HTMLText(html, textextract.JobPostingSelectors...); err == nil {
			p.Description = textextract.Clean(text)
		}
	}
	return p
}

func findJobPostingLD(html string) (jobPostingLD, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return jobPostingLD{}, false
	}

	var found jobPostingLD
	ok := false
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return true
		}
		var candidates []jobPostingLD
		if strings.HasPrefix(raw, "[") {
			if json.Unmarshal([]byte(raw), &candidates) != nil {
				return true
			}
		} else {
			var one jobPostingLD
			if json.Unmarshal([]byte(raw), &one) != nil {
				return true
			}
			candidates = []jobPostingLD{one}
		}
		for _, c := range candidates {
			if c.isJobPosting() {
				found, ok = c, true
				return false
			}
		}
		return true
	})
	return found, ok
}

func (ld jobPostingLD) isJobPosting() bool {
	switch t := ld.Type.(type) {
	case string:
		return t == "JobPosting"
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && s == "JobPosting" {
				return true
			}
		}
	}
	return false
}

func (ld jobPostingLD) location() string {
	if len(ld.JobLocation) == 0 {
		return ""
	}
	var locs []jobLocationLD
	if json.Unmarshal(ld.JobLocation, &locs) != nil {
		var one jobLocationLD
		if json.Unmarshal(ld.JobLocation, &one) != nil {
			return ""
		}
		locs = []jobLocationLD{one}
	}
	for _, l := range locs {
		country, _ := l.Address.Country.(string)
		parts := make([]string, 0, 3)
		for _, v := range []string{l.Address.Locality, l.Address.Region, country} {
			if v = strings.TrimSpace(v); v != "" {
				parts = append(parts, v)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}
	return ""
}

func metaContent(html, selector string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	v, _ := doc.Find(selector).Attr("content")
	return strings.TrimSpace(v)
}
