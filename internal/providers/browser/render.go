package browser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/microcosm-cc/bluemonday"
)

// Heading is one entry of a page outline.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Renderer sanitizes page HTML and extracts its title and outline.
type Renderer struct {
	policy *bluemonday.Policy
}

// NewRenderer creates a renderer with the user generated content policy plus
// class attributes for the desktop stylesheet.
func NewRenderer() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Globally()
	return &Renderer{policy: policy}
}

// Sanitize strips scripts, handlers and anything else unsafe.
func (r *Renderer) Sanitize(raw string) string {
	return r.policy.Sanitize(raw)
}

// Title returns the first h1, or the document title, or fallback.
func (r *Renderer) Title(page, fallback string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title, nil
	}
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title, nil
	}
	if title := strings.TrimSpace(doc.Find("h2").First().Text()); title != "" {
		return title, nil
	}
	return fallback, nil
}

// Outline lists h1-h3 headings in document order.
func (r *Renderer) Outline(page string) ([]Heading, error) {
	doc, err := htmlquery.Parse(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	nodes, err := htmlquery.QueryAll(doc, "//h1 | //h2 | //h3")
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}

	out := make([]Heading, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, Heading{
			Level: int(node.Data[1] - '0'),
			Text:  strings.TrimSpace(htmlquery.InnerText(node)),
		})
	}
	return out, nil
}
