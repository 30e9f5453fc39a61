package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"barbershop-attendance/domain/services"
)

type BunnyConfig struct {
	StorageZone string
	AccessKey   string
	BaseURL     string
}

// BunnyStorage talks to the Bunny.net storage HTTP API where kiosk photos are kept
type BunnyStorage struct {
	config     BunnyConfig
	httpClient *http.Client
}

var _ services.PhotoStorage = (*BunnyStorage)(nil)

func NewBunnyStorage(config BunnyConfig) *BunnyStorage {
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	return &BunnyStorage{
		config: config,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Enabled reports whether a storage zone is configured
func (s *BunnyStorage) Enabled() bool {
	return s.config.StorageZone != "" && s.config.AccessKey != ""
}

func (s *BunnyStorage) objectURL(storageID string) string {
	path := strings.TrimLeft(storageID, "/")
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("%s/%s/%s", s.config.BaseURL, url.PathEscape(s.config.StorageZone), strings.Join(segments, "/"))
}

// Delete removes a stored photo. Missing objects are not an error.
func (s *BunnyStorage) Delete(ctx context.Context, storageID string) error {
	if !s.Enabled() {
		return fmt.Errorf("bunny storage is not configured")
	}
	if storageID == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.objectURL(storageID), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("AccessKey", s.config.AccessKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call bunny storage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("bunny storage returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Ping checks that the zone is reachable with the configured key
func (s *BunnyStorage) Ping(ctx context.Context) error {
	if !s.Enabled() {
		return fmt.Errorf("bunny storage is not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s/", s.config.BaseURL, url.PathEscape(s.config.StorageZone)), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("AccessKey", s.config.AccessKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call bunny storage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("bunny storage returned status %d", resp.StatusCode)
	}
	return nil
}
