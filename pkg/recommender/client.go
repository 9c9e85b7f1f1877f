package recommender

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Item is one scored product returned by the external recommendation service.
type Item struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price,omitempty"`
	Score float64 `json:"score,omitempty"`
}

type response struct {
	Recommendations []Item `json:"recommendations"`
}

// Client calls the separately-operated ML scoring service. Any non-2xx
// response or timeout surfaces as an error so the caller can fall back.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Recommend fetches up to k recommendations for the given identity.
// Identity is either a numeric user id or "anon:<session>".
func (c *Client) Recommend(ctx context.Context, identity string, k int) ([]Item, error) {
	q := url.Values{}
	q.Set("user_id", identity)
	q.Set("k", strconv.Itoa(k))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/recommend?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("recommender returned status %d", resp.StatusCode)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Recommendations, nil
}
