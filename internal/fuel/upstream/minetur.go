package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/canaryfuel/fuel-price-dashboard/internal/fuel"
)

var (
	errServerError  = errors.New("server error")
	errUnexpected   = errors.New("unexpected status code")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// Client fetches price snapshots from the Spanish fuel-price open-data API.
// One Fetch is one HTTP attempt: a run never retries, but a circuit breaker
// shields the upstream across scheduled runs when it is failing.
type Client struct {
	name     string
	endpoint string
	client   *http.Client
	circuit  *gobreaker.CircuitBreaker
}

// NewClient creates a Client for the given endpoint.
func NewClient(httpClient *http.Client, endpoint string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "minetur",
		MaxRequests: 2,
		Interval:    5 * time.Minute,
		Timeout:     10 * time.Minute,
	})

	return &Client{
		name:     "minetur",
		endpoint: endpoint,
		client:   httpClient,
		circuit:  cb,
	}
}

func (c *Client) Name() string {
	return c.name
}

// Fetch performs the snapshot GET and decodes the per-station records.
// Record values arrive as strings keyed by the upstream Spanish field names;
// every "Precio ..." field is kept as a raw price string for the mapper.
func (c *Client) Fetch(ctx context.Context) ([]fuel.StationPriceRecord, error) {
	resp, err := c.do(ctx)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Fecha   string              `json:"Fecha"`
		Listado []map[string]string `json:"ListaEESSPrecio"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	records := make([]fuel.StationPriceRecord, 0, len(payload.Listado))
	for _, raw := range payload.Listado {
		rec := fuel.StationPriceRecord{
			ProvinceID: raw["IDProvincia"],
			StationID:  raw["IDEESS"],
			Prices:     make(map[string]string),
		}
		for k, v := range raw {
			if strings.HasPrefix(k, "Precio ") {
				rec.Prices[k] = v
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// do executes the single request attempt through the circuit breaker.
func (c *Client) do(ctx context.Context) (*http.Response, error) {
	if c.client == nil {
		return nil, errNoHTTPClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, errServerError
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}
