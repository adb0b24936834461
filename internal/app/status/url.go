package status

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Path is the status endpoint relative to the API base.
const Path = "/connection/ws"

// URL derives the status socket address from the API base URL.
// A base without a scheme (a path such as "/api") is resolved against origin.
func URL(apiBase, origin string) (string, error) {
	if apiBase == "" {
		return "", errors.New("API base URL is not configured")
	}

	endpoint := apiBase
	if !strings.HasPrefix(endpoint, "http") {
		endpoint = strings.TrimRight(origin, "/") + endpoint
	}

	switch {
	case strings.HasPrefix(endpoint, "https://"):
		endpoint = "wss://" + strings.TrimPrefix(endpoint, "https://")
	case strings.HasPrefix(endpoint, "http://"):
		endpoint = "ws://" + strings.TrimPrefix(endpoint, "http://")
	default:
		return "", fmt.Errorf("cannot derive a websocket URL from %q", endpoint)
	}

	endpoint = strings.TrimRight(endpoint, "/") + Path

	if _, err := url.Parse(endpoint); err != nil {
		return "", fmt.Errorf("invalid status URL %q: %w", endpoint, err)
	}

	return endpoint, nil
}
