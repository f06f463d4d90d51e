package browser

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// Page kinds.
const (
	KindHome     = "home"
	KindInternal = "internal"
	KindNotFound = "not_found"
	KindExternal = "external"
	KindSearch   = "search"
)

// ErrEmptyAddress is returned for a blank address or search query.
var ErrEmptyAddress = errors.New("address is empty")

var webScheme = regexp.MustCompile(`(?i)^https?://`)

// Page is what a tab shows after loading an address.
type Page struct {
	Kind      string     `json:"kind"`
	Address   string     `json:"address"`
	Title     string     `json:"title"`
	HTML      string     `json:"html"`
	Outline   []Heading  `json:"outline"`
	External  string     `json:"external_url,omitempty"`
	Shortcuts []Shortcut `json:"shortcuts,omitempty"`
}

// Resolve classifies an address. External addresses come back with the URL to hand
// off to a real browser.
func Resolve(address string) (kind, target string, err error) {
	trimmed := strings.TrimSpace(address)
	switch {
	case trimmed == "":
		return "", "", ErrEmptyAddress
	case trimmed == HomeAddress || trimmed == HomeAlias:
		return KindHome, trimmed, nil
	case strings.HasPrefix(trimmed, AboutScheme):
		if _, ok := internalPages[trimmed]; ok {
			return KindInternal, trimmed, nil
		}
		return KindNotFound, trimmed, nil
	case webScheme.MatchString(trimmed):
		return KindExternal, trimmed, nil
	default:
		return KindExternal, "https://" + trimmed, nil
	}
}

// SearchURL builds the search engine hand-off for query.
func SearchURL(query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", ErrEmptyAddress
	}
	return SearchEngine + strings.ReplaceAll(url.QueryEscape(trimmed), "+", "%20"), nil
}

// Load renders address.
func (r *Renderer) Load(address string) (Page, error) {
	kind, target, err := Resolve(address)
	if err != nil {
		return Page{}, err
	}

	page := Page{Kind: kind, Address: strings.TrimSpace(address)}
	var raw string
	switch kind {
	case KindHome:
		raw = homepageHTML()
		page.Shortcuts = Shortcuts
	case KindInternal:
		raw = internalHTML(internalPages[target])
	case KindNotFound:
		raw = notFoundHTML(target)
	case KindExternal:
		raw = externalHTML(target)
		page.External = target
	}
	return r.finish(page, raw, page.Address)
}

// Search renders the hand-off notice for a web search.
func (r *Renderer) Search(query string) (Page, error) {
	target, err := SearchURL(query)
	if err != nil {
		return Page{}, err
	}
	page := Page{Kind: KindSearch, Address: HomeAddress, External: target}
	return r.finish(page, searchHTML(), "Search")
}

func (r *Renderer) finish(page Page, raw, fallbackTitle string) (Page, error) {
	page.HTML = r.Sanitize(raw)

	title, err := r.Title(page.HTML, fallbackTitle)
	if err != nil {
		return Page{}, err
	}
	page.Title = title

	outline, err := r.Outline(page.HTML)
	if err != nil {
		return Page{}, err
	}
	page.Outline = outline
	return page, nil
}
