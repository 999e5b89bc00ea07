package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nikbrunner/animedex/internal/model"
)

// ErrUnexpectedStatus is returned when the catalog URL answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// maxCatalogSize caps the response body read from a catalog URL.
const maxCatalogSize = 64 << 20

// HTTPSource fetches the catalog JSON array from a URL.
type HTTPSource struct {
	client *http.Client
	url    string
}

// NewHTTPSource creates an HTTPSource. A zero timeout means no client timeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

// Describe implements Source.
func (s *HTTPSource) Describe() string {
	return "url " + s.url
}

// Load fetches and decodes the catalog.
func (s *HTTPSource) Load(ctx context.Context) ([]model.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch catalog: %w: %s", ErrUnexpectedStatus, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogSize))
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	return decodeEntries(data)
}
