package resolver

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Resolve takes an input (local file path or http(s) URL) and returns a local
// file ready for ingestion, plus a cleanup function.
func Resolve(ctx context.Context, input string, logger *slog.Logger) (path string, cleanup func(), err error) {
	cleanup = func() {} // default no-op

	if isRemoteURL(input) {
		return fetchList(ctx, input, http.DefaultClient, logger)
	}

	absPath, err := filepath.Abs(input)
	if err != nil {
		return "", cleanup, fmt.Errorf("resolving path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", cleanup, fmt.Errorf("stat %s: %w", absPath, err)
	}

	if info.IsDir() {
		return "", cleanup, fmt.Errorf("%s is a directory, expected a playlist file", absPath)
	}

	logger.Info("resolved local file", "input", input, "path", absPath, "bytes", info.Size())
	return absPath, cleanup, nil
}

func isRemoteURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// cacheDir returns a stable path for caching a downloaded list.
// Uses ~/.cache/artistpairs/lists/<hash> where hash is derived from the URL.
func cacheDir(url string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return cachePath(filepath.Join(home, ".cache", "artistpairs", "lists"), url), nil
}

func cachePath(root, url string) string {
	h := sha256.Sum256([]byte(url))
	return filepath.Join(root, fmt.Sprintf("%x.txt", h[:8]))
}

// fetchList downloads url into the cache. When the download fails but an
// earlier copy is cached, the cached copy is used. Returns a no-op cleanup
// (cache is persistent).
func fetchList(ctx context.Context, url string, client *http.Client, logger *slog.Logger) (string, func(), error) {
	noop := func() {}

	dest, err := cacheDir(url)
	if err != nil {
		return "", noop, err
	}
	return download(ctx, url, dest, client, logger)
}

func download(ctx context.Context, url, dest string, client *http.Client, logger *slog.Logger) (string, func(), error) {
	noop := func() {}

	_, statErr := os.Stat(dest)
	cached := statErr == nil

	logger.Info("downloading playlist file", "url", url, "dest", dest)
	if err := fetchTo(ctx, url, dest, client); err != nil {
		if cached {
			logger.Warn("download failed, using cached copy", "error", err, "dest", dest)
			return dest, noop, nil
		}
		return "", noop, fmt.Errorf("downloading %s: %w", url, err)
	}

	logger.Info("download complete", "dest", dest)
	return dest, noop, nil
}

// fetchTo writes the body of url to dest atomically: the body goes to a
// temporary file in the same directory that is renamed into place only once
// fully written.
func fetchTo(ctx context.Context, url, dest string, client *http.Client) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dest); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
