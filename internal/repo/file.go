package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pkordes/triplog/internal/domain"
)

// slotName restricts keys to names that are safe as file names.
var slotName = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// fileSlotRepo stores each slot as <dir>/<key>.json.
type fileSlotRepo struct {
	dir string
}

// NewFileSlotRepo constructs a SlotRepo rooted at dir, creating it if needed.
func NewFileSlotRepo(dir string) (SlotRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("repo.NewFileSlotRepo: %w", err)
	}
	return &fileSlotRepo{dir: dir}, nil
}

func (r *fileSlotRepo) path(key string) (string, error) {
	if !slotName.MatchString(key) {
		return "", fmt.Errorf("invalid slot name %q", key)
	}
	return filepath.Join(r.dir, key+".json"), nil
}

func (r *fileSlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	p, err := r.path(key)
	if err != nil {
		return nil, fmt.Errorf("repo.fileSlotRepo.Get: %w", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("repo.fileSlotRepo.Get %q: %w", key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.fileSlotRepo.Get %q: %w", key, err)
	}
	return b, nil
}

// Put writes to a temp file in the same directory and renames it over the
// slot file; rename is atomic on POSIX filesystems.
func (r *fileSlotRepo) Put(ctx context.Context, key string, value []byte) error {
	p, err := r.path(key)
	if err != nil {
		return fmt.Errorf("repo.fileSlotRepo.Put: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("repo.fileSlotRepo.Put %q: %w", key, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("repo.fileSlotRepo.Put %q: write: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("repo.fileSlotRepo.Put %q: sync: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("repo.fileSlotRepo.Put %q: close: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("repo.fileSlotRepo.Put %q: rename: %w", key, err)
	}
	return nil
}
