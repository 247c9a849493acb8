// Package plantapi fetches raw plant records from the upstream API. Plants
// are keyed by an incrementing identifier with no advertised upper bound, so
// discovery fans out bounded-size batches of concurrent requests and stops
// after a fixed number of consecutive misses.
package plantapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/log"
)

const maxRetries = 3

// Client is a hardened HTTP client for the plant API.
type Client struct {
	baseURL   string
	http      *http.Client
	breaker   *gobreaker.CircuitBreaker
	batchSize int
	missLimit int
}

// New creates a plant API client. batchSize bounds the concurrent request
// fan-out; missLimit is the consecutive-miss count that terminates discovery.
func New(baseURL string, timeout time.Duration, batchSize, missLimit int) *Client {
	return &Client{
		baseURL:   baseURL,
		http:      &http.Client{Timeout: timeout},
		batchSize: batchSize,
		missLimit: missLimit,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "plant-api",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 5
			},
		}),
	}
}

// FetchPlant fetches one plant record. A not-found plant returns (nil, nil);
// transient transport and server errors are retried with exponential backoff
// behind a circuit breaker.
func (c *Client) FetchPlant(ctx context.Context, id int) (map[string]interface{}, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
		return backoff.RetryWithData(func() (map[string]interface{}, error) {
			return c.fetchOnce(ctx, id)
		}, b)
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return result.(map[string]interface{}), nil
}

func (c *Client) fetchOnce(ctx context.Context, id int) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching plant %d: %w", id, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("plant %d: upstream status %s", id, resp.Status)
	case resp.StatusCode >= 300:
		return nil, backoff.Permanent(fmt.Errorf("plant %d: unexpected status %s", id, resp.Status))
	}

	var rec map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decoding plant %d: %w", id, err))
	}
	return rec, nil
}

// Discover scans plant identifiers from 1 upward in concurrent batches and
// returns every record carrying a plant name. The scan terminates once the
// consecutive-miss counter reaches the miss limit; a miss is a request
// failure, a not-found, or a payload without a name.
func (c *Client) Discover(ctx context.Context) ([]map[string]interface{}, error) {
	var records []map[string]interface{}
	misses := 0
	nextID := 1

	for misses < c.missLimit {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		results := make([]map[string]interface{}, c.batchSize)
		var wg sync.WaitGroup
		for i := 0; i < c.batchSize; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				rec, err := c.FetchPlant(ctx, nextID+i)
				if err != nil {
					log.Debugw("plant fetch miss", "plant_id", nextID+i, "error", err)
					return
				}
				results[i] = rec
			}(i)
		}
		wg.Wait()

		for _, rec := range results {
			if hasName(rec) {
				records = append(records, rec)
				misses = 0
				continue
			}
			misses++
			if misses >= c.missLimit {
				break
			}
		}
		nextID += c.batchSize
	}

	log.Infof("discovered %d plants", len(records))
	return records, nil
}

func hasName(rec map[string]interface{}) bool {
	if rec == nil {
		return false
	}
	name, ok := rec["name"].(string)
	return ok && name != ""
}
