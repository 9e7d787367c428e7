// Package mealdb is a client for TheMealDB JSON API.
package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jacksmith/mealmix/internal/model"
	"github.com/jacksmith/mealmix/internal/ops"
	"go.uber.org/zap"
)

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 4 << 20

// StatusError is returned when the service answers with a non-2xx status.
// It matches ops.ErrNetwork under errors.Is.
type StatusError struct {
	StatusCode int
	Endpoint   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ops.ErrNetwork
}

// Client fetches recipes from a MealDB-compatible endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// New returns a Client for baseURL, e.g.
// https://www.themealdb.com/api/json/v1/1. A zero timeout means requests
// are bounded only by their context. A nil logger discards logs.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// response is the envelope every endpoint returns. Meals is null when
// nothing matched.
type response struct {
	Meals []map[string]any `json:"meals"`
}

// Random returns one random recipe, or nil if the service sent none.
func (c *Client) Random(ctx context.Context) (*model.Recipe, error) {
	recipes, err := c.get(ctx, "random.php", nil)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, nil
	}
	return &recipes[0], nil
}

// SearchByName returns the recipes whose name matches name. No match is an
// empty slice, not an error.
func (c *Client) SearchByName(ctx context.Context, name string) ([]model.Recipe, error) {
	return c.get(ctx, "search.php", url.Values{"s": {name}})
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values) ([]model.Recipe, error) {
	u := c.baseURL + "/" + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", endpoint, ctxErr)
		}
		return nil, fmt.Errorf("%s: %w: %v", endpoint, ops.ErrNetwork, err)
	}
	defer resp.Body.Close()

	c.log.Debug("mealdb request",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{StatusCode: resp.StatusCode, Endpoint: endpoint}
	}

	var body response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s: %w: decoding response: %v", endpoint, ops.ErrNetwork, err)
	}

	recipes := make([]model.Recipe, 0, len(body.Meals))
	for _, rec := range body.Meals {
		r, err := model.RecipeFromRecord(rec)
		if err != nil {
			c.log.Warn("skipping malformed recipe record", zap.String("endpoint", endpoint), zap.Error(err))
			continue
		}
		recipes = append(recipes, *r)
	}
	return recipes, nil
}
