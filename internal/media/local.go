// Package media holds the blob stores behind post and avatar uploads.
package media

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore writes blobs under a directory that the router serves
// statically under URLPrefix.
type LocalStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore creates dir if needed
func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media dir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

func (l *LocalStore) Dir() string {
	return l.dir
}

func (l *LocalStore) Put(_ context.Context, name, _ string, data []byte) (string, error) {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid blob name %q", name)
	}
	if err := os.WriteFile(filepath.Join(l.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("writing blob: %w", err)
	}
	return path.Join(l.urlPrefix, name), nil
}

// Delete removes the file behind ref. Unknown refs are ignored.
func (l *LocalStore) Delete(_ context.Context, ref string) error {
	if !strings.HasPrefix(ref, l.urlPrefix+"/") {
		return nil
	}
	err := os.Remove(filepath.Join(l.dir, filepath.Base(ref)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing blob: %w", err)
	}
	return nil
}
