package index

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Fetch retrieves and parses the site index document. One GET, no retries: a
// failed load leaves the caller with an empty store for the session, which
// degrades search to "no results" rather than an error the user has to see.
func Fetch(client *http.Client, url string) (Document, error) {
	if client == nil {
		client = http.DefaultClient
	}

	var doc Document
	resp, err := client.Get(url)
	if err != nil {
		return doc, fmt.Errorf("failed to fetch index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return doc, fmt.Errorf("failed to fetch index: unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return doc, fmt.Errorf("failed to parse index: %w", err)
	}
	return doc, nil
}
