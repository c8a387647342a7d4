package fetcher

import "net/http"

// Browser request profile. Several backends and the sites behind them
// refuse requests that do not look like they come from a desktop browser.
const (
	acceptHeader         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
	acceptLanguageHeader = "en-US,en;q=0.7,de;q=0.3"
	refererHeader        = "https://www.google.com/"
)

// setBrowserHeaders applies the browser request profile.
// Accept-Encoding is left to the transport so that gzip responses are
// decompressed transparently.
func setBrowserHeaders(h http.Header, userAgent string) {
	h.Set("User-Agent", userAgent)
	h.Set("Accept", acceptHeader)
	h.Set("Accept-Language", acceptLanguageHeader)
	h.Set("Referer", refererHeader)
	h.Set("DNT", "1")
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("Sec-Fetch-Dest", "document")
	h.Set("Sec-Fetch-Mode", "navigate")
	h.Set("Sec-Fetch-Site", "cross-site")
}
