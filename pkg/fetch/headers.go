package fetch

import (
	"math/rand"
	"net/http"
)

const (
	acceptDocument = "text/html,application/xhtml+xml,application/xml;q=0.9,application/rss+xml;q=0.9,text/xml;q=0.8,*/*;q=0.7"
	acceptBinary   = "image/avif,image/webp,image/apng,image/*,*/*;q=0.8"
)

// acceptLanguages contains common browser Accept-Language values, sources are mostly turkish
var acceptLanguages = []string{
	"tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7",
	"tr-TR,tr;q=0.9,en;q=0.8",
	"tr,en-US;q=0.9,en;q=0.8",
	"en-US,en;q=0.9,tr;q=0.8",
	"en-GB,en;q=0.9",
}

// addBrowserHeaders makes the request look like a regular browser navigation,
// several source sites reject default client identifiers
func addBrowserHeaders(req *http.Request, userAgent, accept string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // non-cryptographic randomness is fine for header variation

	// dnt - 30% chance of being set
	if rand.Float32() < 0.3 { //nolint:gosec // non-cryptographic randomness is fine
		req.Header.Set("DNT", "1")
	}

	if accept == acceptDocument {
		req.Header.Set("Upgrade-Insecure-Requests", "1")
		req.Header.Set("Sec-Fetch-Dest", "document")
		req.Header.Set("Sec-Fetch-Mode", "navigate")
	} else {
		req.Header.Set("Sec-Fetch-Dest", "image")
		req.Header.Set("Sec-Fetch-Mode", "no-cors")
	}
}
