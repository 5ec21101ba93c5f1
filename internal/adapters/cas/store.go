// Package cas implements file-backed storage for timing caches and compiled plans.
package cas

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.TimingCacheStore using one file per cache key.
type Store struct {
	dir  string
	file string
}

// NewStore creates a store that keeps cache files in dir. file names the unkeyed cache.
func NewStore(dir, file string) *Store {
	if file == "" {
		file = domain.DefaultCacheFile
	}
	return &Store{dir: dir, file: file}
}

// Path returns the file that holds the cache for key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, domain.CacheFileName(s.file, key))
}

// Lookup reads the cache stored under key.
// A missing file is not an error. An unreadable or zero-byte file is.
func (s *Store) Lookup(key string) (domain.TimingCacheBlob, bool, error) {
	path := s.Path(key)
	//nolint:gosec // Path is built from the configured cache directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.TimingCacheBlob{}, false, nil
		}
		return domain.TimingCacheBlob{}, true, zerr.With(errors.Join(domain.ErrCacheReadFailed, err), "path", path)
	}
	if len(data) == 0 {
		return domain.TimingCacheBlob{}, true, zerr.With(zerr.Wrap(domain.ErrCacheEmpty, "cache lookup aborted"), "path", path)
	}
	return domain.NewTimingCacheBlob(data), true, nil
}

// Save writes blob under key. The file appears atomically and is never replaced:
// if it already exists, Save returns domain.ErrCacheExists and leaves it untouched.
func (s *Store) Save(key string, blob domain.TimingCacheBlob) error {
	path := s.Path(key)
	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrCacheWriteFailed, err), "path", path)
	}

	tmp, err := writeTemp(s.dir, filepath.Base(path), blob.Bytes())
	if err != nil {
		return zerr.With(errors.Join(domain.ErrCacheWriteFailed, err), "path", path)
	}
	defer func() { _ = os.Remove(tmp) }()

	// Link fails if path exists, which makes the publish create-exclusive.
	if err := os.Link(tmp, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return zerr.With(zerr.Wrap(domain.ErrCacheExists, "refusing to overwrite"), "path", path)
		}
		return zerr.With(errors.Join(domain.ErrCacheWriteFailed, err), "path", path)
	}
	return nil
}

// Purge removes every cache file in the store directory.
func (s *Store) Purge() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, zerr.With(errors.Join(domain.ErrCachePurgeFailed, err), "dir", s.dir)
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !isCacheFile(e.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, zerr.With(errors.Join(domain.ErrCachePurgeFailed, err), "file", e.Name())
		}
		removed++
	}
	return removed, nil
}

func isCacheFile(name string) bool {
	return strings.HasSuffix(name, domain.CacheExt) && !strings.HasPrefix(name, ".")
}

// writeTemp writes data to a hidden temporary file in dir and syncs it.
func writeTemp(dir, base string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return "", err
	}
	name := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return "", err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	if err := os.Chmod(name, domain.FilePerm); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}
