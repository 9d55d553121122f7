package links

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// defaultLookupURL is the DuckDuckGo instant-answer endpoint. It
// returns JSON without scraping and tolerates light automated use,
// which is why lookups are still rate limited on our side.
const defaultLookupURL = "https://api.duckduckgo.com/"

// lookupResponse is the subset of the instant-answer payload we read.
type lookupResponse struct {
	AbstractURL string `json:"AbstractURL"`
	Results     []struct {
		FirstURL string `json:"FirstURL"`
	} `json:"Results"`
}

// discover queries the search provider for a merchant-specific
// cancellation page. An empty return with nil error means the provider
// had no specific answer.
func (r *Resolver) discover(ctx context.Context, merchant string) (string, error) {
	q := url.Values{}
	q.Set("q", "cancel "+merchant+" subscription")
	q.Set("format", "json")
	q.Set("no_html", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.lookupURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build lookup request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("lookup %q: %w", merchant, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lookup %q: unexpected status %d", merchant, resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode lookup response: %w", err)
	}

	if body.AbstractURL != "" {
		return body.AbstractURL, nil
	}
	if len(body.Results) > 0 && body.Results[0].FirstURL != "" {
		return body.Results[0].FirstURL, nil
	}
	return "", nil
}

// GenericSearchURL builds the always-available fallback: a web search
// for how to cancel the merchant. Every resolution path bottoms out
// here, which is what makes Resolve total.
func GenericSearchURL(merchant string) string {
	q := url.Values{}
	q.Set("q", "how to cancel "+merchant)
	return "https://www.google.com/search?" + q.Encode()
}
