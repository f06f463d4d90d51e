package browser

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// Addresses with special handling.
const (
	HomeAddress  = "about:ubuntu"
	HomeAlias    = "about:home"
	AboutScheme  = "about:"
	SearchEngine = "https://duckduckgo.com/?q="
)

// InternalPage is a built-in about: page.
type InternalPage struct {
	Title string
	Body  string
}

// Shortcut is a homepage link.
type Shortcut struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

var internalPages = map[string]InternalPage{
	"about:ubuntu": {
		Title: "Ubuntu Web",
		Body: `<p>Welcome to the Ubuntu Web desktop. This browser is sandboxed, but you can open shortcuts in new tabs.</p>
<ul>
  <li>Use the search box to perform a web search (opens in a new tab).</li>
  <li>Try <code>about:news</code> for simulated headlines.</li>
  <li>Use the Files app or Terminal to explore the virtual filesystem.</li>
</ul>`,
	},
	"about:news": {
		Title: "Ubuntu Web Daily",
		Body: `<h2>Headlines</h2>
<ol>
  <li>Ubuntu Web Desktop reaches feature-complete beta.</li>
  <li>Developers embrace fully-local browser workspaces.</li>
  <li>Community themes and extensions arriving soon.</li>
</ol>`,
	},
	"about:release": {
		Title: "Release Notes",
		Body: `<h2>Ubuntu Web Desktop 22.04</h2>
<p>This release introduces:</p>
<ul>
  <li>Shared virtual filesystem across apps.</li>
  <li>Simulated APT package manager output.</li>
  <li>Customisable wallpapers and accent colours.</li>
</ul>`,
	},
}

// Shortcuts shown on the homepage.
var Shortcuts = []Shortcut{
	{Label: "Ubuntu Wiki", URL: "https://en.wikipedia.org/wiki/Ubuntu"},
	{Label: "Ubuntu Docs", URL: "https://ubuntu.com/tutorials"},
	{Label: "Launchpad", URL: "https://launchpad.net/"},
	{Label: "Stack Overflow", URL: "https://stackoverflow.com/questions/tagged/ubuntu"},
}

// InternalAddresses lists the about: pages in address order.
func InternalAddresses() []string {
	out := make([]string, 0, len(internalPages))
	for addr := range internalPages {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}

func homepageHTML() string {
	var b strings.Builder
	b.WriteString(`<div class="browser-home"><div class="browser-home-header">`)
	b.WriteString(`<h1>Ubuntu Web</h1><p>Search the web or pick a shortcut to begin exploring.</p></div>`)
	b.WriteString(`<div class="browser-shortcuts"><ul>`)
	for _, s := range Shortcuts {
		fmt.Fprintf(&b, `<li><a href="%s">%s</a></li>`, html.EscapeString(s.URL), html.EscapeString(s.Label))
	}
	b.WriteString(`</ul></div></div>`)
	return b.String()
}

func internalHTML(page InternalPage) string {
	return fmt.Sprintf(`<div class="browser-internal"><h1>%s</h1><div>%s</div></div>`,
		html.EscapeString(page.Title), page.Body)
}

func notFoundHTML(address string) string {
	return fmt.Sprintf(`<div class="browser-notice"><h2>Page not found</h2><p>The internal page <code>%s</code> does not exist.</p></div>`,
		html.EscapeString(address))
}

func externalHTML(target string) string {
	return fmt.Sprintf(`<div class="browser-notice"><h2>Opened in new tab</h2><p>The URL <code>%s</code> has been opened outside of this sandboxed browser.</p></div>`,
		html.EscapeString(target))
}

func searchHTML() string {
	return `<div class="browser-notice"><p>Search results opened in a new tab.</p></div>`
}
