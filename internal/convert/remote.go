// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/docparse/internal/httputil"
	"github.com/pdiddy/docparse/pkg/types"
)

const defaultRemoteTimeout = 2 * time.Minute

// RemoteConverter posts document bytes to a conversion HTTP service and
// treats the response body as the rendered Markdown. Rate-limited requests
// are retried with exponential backoff.
type RemoteConverter struct {
	url       string
	apiKey    string
	userAgent string
	client    *http.Client
}

// NewRemoteConverter builds a converter for the service described by cfg.
// The URL is required.
func NewRemoteConverter(cfg types.RemoteConfig) (*RemoteConverter, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("remote backend requires a service URL (convert.remote.url)")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &RemoteConverter{
		url:       cfg.URL,
		apiKey:    cfg.APIKey,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

// Convert uploads the file and returns the service's Markdown rendering. The
// file is read into memory first so rate-limit retries can resend the body.
func (r *RemoteConverter) Convert(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, r.url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("building conversion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("X-File-Name", filepath.Base(path))
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := httputil.DoWithRetry(req.Context(), r.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("posting %s to conversion service: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("conversion service returned %s: %s", resp.Status, bytes.TrimSpace(body))
	}

	markdown, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading conversion response: %w", err)
	}
	if len(markdown) == 0 {
		return nil, fmt.Errorf("conversion service produced empty output for %s", path)
	}

	return NewDoc(string(markdown)), nil
}
