package remix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jacksmith/mealmix/internal/model"
	"github.com/jacksmith/mealmix/internal/ops"
)

const remixPath = "/api/remix"

// remixRequest is the body of POST /api/remix.
type remixRequest struct {
	Recipe map[string]any `json:"recipe"`
	Theme  string         `json:"theme"`
}

// remixResponse is the reply to POST /api/remix. Error is set instead of
// Remix on failure.
type remixResponse struct {
	Remix string `json:"remix,omitempty"`
	Error string `json:"error,omitempty"`
}

// ProxyClient remixes through a mealmix serve instance, which holds the
// model credential.
type ProxyClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewProxyClient returns a client for the proxy at baseURL.
func NewProxyClient(baseURL string, timeout time.Duration) *ProxyClient {
	return &ProxyClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *ProxyClient) Remix(ctx context.Context, r *model.Recipe, theme string) (string, error) {
	record := r.Record
	if record == nil {
		record = map[string]any{"strMeal": r.Name}
	}
	body, err := json.Marshal(remixRequest{Recipe: record, Theme: theme})
	if err != nil {
		return "", fmt.Errorf("encoding remix request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+remixPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("remix proxy: %w: %v", ops.ErrNetwork, err)
	}
	defer resp.Body.Close()

	var out remixResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("remix proxy: %w: status %d, decoding response: %v", ops.ErrNetwork, resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("remix proxy: %w: status %d: %s", ops.ErrNetwork, resp.StatusCode, out.Error)
	}
	if out.Remix == "" {
		return "", ErrEmptyCompletion
	}
	return out.Remix, nil
}
