/*
Package browser simulates the desktop's sandboxed web browser tab.

The tab only renders internal about: pages. Anything else is handed off to a real
browser: http(s) URLs open as-is, bare hosts are assumed to be https, and searches
go to DuckDuckGo.

# Pages

	about:ubuntu, about:home  homepage with search box and shortcuts
	about:news                simulated headlines
	about:release             release notes
	about:<other>             page not found

Rendered HTML is sanitized with bluemonday. The page title is read with goquery and
the heading outline with htmlquery, so the same pipeline would serve pages loaded
from the virtual filesystem.

# Tools

	browser.navigate     load an address in a tab
	browser.search       build a search hand-off
	browser.home         show the homepage
	browser.back         previous address in the tab
	browser.get_session  tab state and history
	browser.pages        list internal pages and shortcuts
*/
package browser
