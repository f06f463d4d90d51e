package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		address    string
		wantKind   string
		wantTarget string
		wantErr    bool
	}{
		{address: "about:ubuntu", wantKind: KindHome, wantTarget: "about:ubuntu"},
		{address: "  about:home ", wantKind: KindHome, wantTarget: "about:home"},
		{address: "about:news", wantKind: KindInternal, wantTarget: "about:news"},
		{address: "about:release", wantKind: KindInternal, wantTarget: "about:release"},
		{address: "about:blank", wantKind: KindNotFound, wantTarget: "about:blank"},
		{address: "https://ubuntu.com", wantKind: KindExternal, wantTarget: "https://ubuntu.com"},
		{address: "HTTP://example.org/x", wantKind: KindExternal, wantTarget: "HTTP://example.org/x"},
		{address: "launchpad.net", wantKind: KindExternal, wantTarget: "https://launchpad.net"},
		{address: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			kind, target, err := Resolve(tt.address)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmptyAddress)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantTarget, target)
		})
	}
}

func TestSearchURL(t *testing.T) {
	got, err := SearchURL(" ubuntu 22.04 & more ")
	require.NoError(t, err)
	assert.Equal(t, "https://duckduckgo.com/?q=ubuntu%2022.04%20%26%20more", got)

	_, err = SearchURL("")
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

func TestLoadPages(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		address     string
		wantTitle   string
		wantText    string
		wantOutline []Heading
	}{
		{
			address:     "about:ubuntu",
			wantTitle:   "Ubuntu Web",
			wantText:    "Stack Overflow",
			wantOutline: []Heading{{Level: 1, Text: "Ubuntu Web"}},
		},
		{
			address:     "about:news",
			wantTitle:   "Ubuntu Web Daily",
			wantText:    "feature-complete beta",
			wantOutline: []Heading{{Level: 1, Text: "Ubuntu Web Daily"}, {Level: 2, Text: "Headlines"}},
		},
		{
			address:     "about:release",
			wantTitle:   "Release Notes",
			wantText:    "Simulated APT package manager output.",
			wantOutline: []Heading{{Level: 1, Text: "Release Notes"}, {Level: 2, Text: "Ubuntu Web Desktop 22.04"}},
		},
		{
			address:     "about:missing",
			wantTitle:   "Page not found",
			wantText:    "The internal page <code>about:missing</code> does not exist.",
			wantOutline: []Heading{{Level: 2, Text: "Page not found"}},
		},
		{
			address:     "ubuntu.com",
			wantTitle:   "Opened in new tab",
			wantText:    "<code>https://ubuntu.com</code>",
			wantOutline: []Heading{{Level: 2, Text: "Opened in new tab"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			page, err := r.Load(tt.address)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, page.Title)
			assert.Contains(t, page.HTML, tt.wantText)
			assert.Equal(t, tt.wantOutline, page.Outline)
		})
	}
}

func TestSanitizeStripsScripts(t *testing.T) {
	r := NewRenderer()

	page, err := r.Load(`about:<script>alert(1)</script>`)
	require.NoError(t, err)
	assert.Equal(t, KindNotFound, page.Kind)
	assert.NotContains(t, page.HTML, "<script>")

	clean := r.Sanitize(`<p class="x" onclick="evil()">hi</p><script>bad()</script>`)
	assert.Equal(t, `<p class="x">hi</p>`, clean)
}

func TestSearchPage(t *testing.T) {
	page, err := NewRenderer().Search("go generics")
	require.NoError(t, err)
	assert.Equal(t, KindSearch, page.Kind)
	assert.Equal(t, "Search", page.Title)
	assert.Equal(t, "https://duckduckgo.com/?q=go%20generics", page.External)
	assert.Contains(t, page.HTML, "Search results opened in a new tab.")
}
