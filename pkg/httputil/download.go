package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const httpTimeout = 2 * time.Minute

var (
	ErrNotFound = errors.New("resource not found")
	ErrNetwork  = errors.New("network error")
)

// Downloader stores remote files in a directory and reuses them while
// they are fresh.
type Downloader struct {
	http *http.Client
	dir  string
	ttl  time.Duration
}

// NewDownloader returns a downloader writing to dir. A TTL of 0 keeps
// downloads forever.
func NewDownloader(dir string, ttl time.Duration) *Downloader {
	return &Downloader{
		http: &http.Client{Timeout: httpTimeout},
		dir:  dir,
		ttl:  ttl,
	}
}

// Dir returns the download directory.
func (d *Downloader) Dir() string { return d.dir }

// Path returns where name is stored.
func (d *Downloader) Path(name string) string { return filepath.Join(d.dir, name) }

// Fresh reports whether name has been downloaded and has not expired.
func (d *Downloader) Fresh(name string) bool {
	info, err := os.Stat(d.Path(name))
	if err != nil {
		return false
	}
	return d.ttl <= 0 || time.Since(info.ModTime()) <= d.ttl
}

// Fetch downloads url into name unless a fresh copy exists or refresh is
// set, and returns the local path. A failed download leaves the previous
// copy in place.
func (d *Downloader) Fetch(ctx context.Context, url, name string, refresh bool) (string, error) {
	path := d.Path(name)
	if !refresh && d.Fresh(name) {
		return path, nil
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", err
	}

	err := RetryWithBackoff(ctx, func() error {
		return d.download(ctx, url, path)
	})
	if err != nil {
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	return path, nil
}

func (d *Downloader) download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := d.http.Do(req)
	if err != nil {
		return &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()
	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(d.dir, ".download-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
