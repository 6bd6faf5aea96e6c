// Package images persists downloaded cover images under a per-domain prefix
// with a generated unique name and the original extension
package images

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore writes images under a root directory
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore makes a LocalStore, baseURL is the public prefix images are served from
func NewLocalStore(root, baseURL string) *LocalStore {
	return &LocalStore{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Save writes data to <root>/<domain>/<uuid><ext> and returns the public path
func (s *LocalStore) Save(_ context.Context, domain, sourceURL string, data []byte) (string, error) {
	name := FileName(sourceURL, data)
	dir := filepath.Join(s.root, domain)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // served by the web server
		return "", fmt.Errorf("create image dir %s: %w", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil { //nolint:gosec // served by the web server
		return "", fmt.Errorf("write image %s: %w", name, err)
	}
	return s.baseURL + "/" + path.Join(domain, name), nil
}

// FileName makes a unique file name keeping the extension of the source URL,
// falling back to the sniffed content type
func FileName(sourceURL string, data []byte) string {
	return uuid.NewString() + Extension(sourceURL, data)
}

// Extension returns the lowercase extension (with dot) of the source URL path
func Extension(sourceURL string, data []byte) string {
	if u, err := url.Parse(sourceURL); err == nil {
		ext := strings.ToLower(path.Ext(u.Path))
		if len(ext) > 1 && len(ext) <= 5 {
			return ext
		}
	}

	switch http.DetectContentType(data) {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
