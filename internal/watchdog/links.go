package watchdog

import (
	"net/url"
	"strings"
)

// SearchLink is one job-board search URL for a query.
type SearchLink struct {
	Site string `json:"site"`
	URL  string `json:"url"`
}

// SearchLinks builds the board URLs for a query, in the order they appear
// in the report. Naukri takes hyphenated paths instead of encoded spaces.
func SearchLinks(query string) []SearchLink {
	encoded := url.PathEscape(query)
	return []SearchLink{
		{Site: "LinkedIn", URL: "https://www.linkedin.com/jobs/search/?keywords=" + encoded},
		{Site: "Naukri", URL: "https://www.naukri.com/" + strings.ReplaceAll(encoded, "%20", "-")},
		{Site: "Indeed", URL: "https://in.indeed.com/jobs?q=" + encoded},
		{Site: "Google Jobs", URL: "https://www.google.com/search?q=" + encoded + "&ibp=htl;jobs"},
	}
}
