package watchdog

import (
	"fmt"
	"net/url"
	"strings"
)

// buildReportBody renders the HTML digest: one link block per board plus
// the two tracking buttons that feed the activity log.
func buildReportBody(baseURL, userName, query, source string, links []SearchLink) string {
	var linksHTML strings.Builder
	for _, link := range links {
		linksHTML.WriteString(fmt.Sprintf(`
			<a href="%s" style="display:block; background:#f8fafc; padding:12px; margin:8px 0; border:1px solid #e2e8f0; border-radius:6px; text-decoration:none; color:#334155; font-weight:bold;">
				Search on %s &rarr;
			</a>`, link.URL, link.Site))
	}

	trackApply := trackingLink(baseURL, userName, query, "Applied")
	trackHelpful := trackingLink(baseURL, userName, query, "Helpful")

	return fmt.Sprintf(`<html>
<body style="font-family: sans-serif; padding: 20px; color: #333; max-width: 600px; margin: auto;">
	<div style="text-align: center; border-bottom: 2px solid #00B4D8; padding-bottom: 20px;">
		<h2 style="color: #00B4D8; margin:0;">GLOBAL JOB SCOUT</h2>
		<p style="color: #64748b;">Source: %s</p>
	</div>

	<p>Hi %s,</p>
	<p>We scanned the entire web for <b>%q</b>. Here are the direct search results across all major platforms:</p>

	%s

	<hr style="border: 0; border-top: 1px solid #eee; margin: 30px 0;">

	<p style="text-align: center; font-size: 14px; font-weight: bold;">Quick Feedback (Updates your Dashboard)</p>
	<div style="text-align: center;">
		<a href="%s" style="background-color: #2ecc71; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; margin: 5px;">I Applied</a>
		<a href="%s" style="background-color: #3b82f6; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; margin: 5px;">Just Helpful</a>
	</div>
</body>
</html>`, source, userName, query, linksHTML.String(), trackApply, trackHelpful)
}

func trackingLink(baseURL, userName, query, status string) string {
	params := url.Values{}
	params.Set("status", status)
	params.Set("role", query)
	params.Set("user", userName)
	return baseURL + "/api/watchdog/track?" + params.Encode()
}
