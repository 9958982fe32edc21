package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/openview/internal/domain"
)

const detectTimeout = 10 * time.Second

// Detect probes serverURL and returns nil if it answers the OpenView
// directory info request for the gallery root.
func Detect(ctx context.Context, serverURL string) error {
	serverURL = strings.TrimRight(serverURL, "/")

	u, err := url.Parse(serverURL)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server URL: scheme must be http or https")
	}

	client := &http.Client{
		Timeout: detectTimeout,
	}

	probe := serverURL + "/?action=info&page_size=1"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probe, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", domain.ErrNotOpenView, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Both lists are always present in an OpenView listing, even when empty.
	var probeResp struct {
		Directories *json.RawMessage `json:"directories"`
		Images      *json.RawMessage `json:"images"`
	}
	if err := json.Unmarshal(body, &probeResp); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotOpenView, err)
	}
	if probeResp.Directories == nil || probeResp.Images == nil {
		return domain.ErrNotOpenView
	}

	return nil
}
