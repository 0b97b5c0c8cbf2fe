package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/filekeeper/internal/common"
)

// DiskStore keeps blobs as flat files named by uuid under a root directory.
// The directory is created on first write.
type DiskStore struct {
	root string
}

// NewDiskStore returns a disk-backed store rooted at dir.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{root: dir}
}

func (s *DiskStore) path(ref string) string {
	// ref is always a server-generated uuid; Base guards against a
	// corrupted reference escaping the root.
	return filepath.Join(s.root, filepath.Base(ref))
}

func (s *DiskStore) Write(ctx context.Context, data []byte) (string, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("creating blob dir: %w", err)
	}

	ref := uuid.NewString()
	f, err := os.OpenFile(s.path(ref), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating blob: %w", err)
	}

	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		_ = os.Remove(s.path(ref))
		return "", fmt.Errorf("writing blob: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(s.path(ref))
		return "", fmt.Errorf("closing blob: %w", err)
	}
	return ref, nil
}

func (s *DiskStore) OpenRead(ctx context.Context, ref string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(ref))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("opening blob: %w", err)
	}
	return f, nil
}

func (s *DiskStore) Exists(ctx context.Context, ref string) (bool, error) {
	_, err := os.Stat(s.path(ref))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat blob: %w", err)
}

func (s *DiskStore) Remove(ctx context.Context, ref string) error {
	err := os.Remove(s.path(ref))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing blob: %w", err)
	}
	return nil
}
