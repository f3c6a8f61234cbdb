package scholar

import (
	"net/http"
	"strings"
)

// DetectBlock checks a completed response for signs of anti-automation
// challenge. Detection is best effort: the goal is to report blocking, not
// to defeat it.
func DetectBlock(resp *http.Response, body []byte) (bool, string) {
	if resp != nil && (resp.StatusCode == 403 || resp.StatusCode == 503) {
		if resp.Header.Get("cf-ray") != "" || resp.Header.Get("server") == "cloudflare" {
			return true, "cloudflare"
		}
	}

	lower := strings.ToLower(string(body))

	// Human-verification interstitial markers.
	if strings.Contains(lower, "unusual traffic") {
		return true, "unusual_traffic"
	}
	if strings.Contains(lower, "captcha") {
		return true, "captcha"
	}

	return false, ""
}
