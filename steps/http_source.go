package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// SourceFactory binds a Source to a single user; one source backs one
// session's subscription.
type SourceFactory func(userID string) Source

// NewHTTPSourceFactory builds sources that query a sensor gateway over HTTP.
// The gateway answers GET <baseURL>?userId=&start=&end= (unix seconds) with
// {"steps": N}, where N is the cumulative count for the window.
func NewHTTPSourceFactory(baseURL string) SourceFactory {
	client := &http.Client{Timeout: 10 * time.Second}
	return func(userID string) Source {
		return SourceFunc(func(ctx context.Context, start, end time.Time) (int, error) {
			query := url.Values{}
			query.Set("userId", userID)
			query.Set("start", strconv.FormatInt(start.Unix(), 10))
			query.Set("end", strconv.FormatInt(end.Unix(), 10))

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+query.Encode(), nil)
			if err != nil {
				return 0, err
			}
			resp, err := client.Do(req)
			if err != nil {
				return 0, err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return 0, fmt.Errorf("step source returned status %d", resp.StatusCode)
			}

			var payload struct {
				Steps int `json:"steps"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
				return 0, err
			}
			if payload.Steps < 0 {
				return 0, fmt.Errorf("step source returned negative count %d", payload.Steps)
			}
			return payload.Steps, nil
		})
	}
}
