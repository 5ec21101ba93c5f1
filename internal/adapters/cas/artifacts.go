package cas

import (
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/temper/internal/core/domain"
	"go.trai.ch/zerr"
)

// ArtifactStore implements ports.ArtifactStore. Unlike timing caches, plans are replaced on every write.
type ArtifactStore struct {
	dir string
}

// NewArtifactStore creates a store that writes plans into dir.
func NewArtifactStore(dir string) *ArtifactStore {
	return &ArtifactStore{dir: dir}
}

// Write atomically replaces the named plan file. Relative names resolve against the store directory.
func (s *ArtifactStore) Write(name string, artifact domain.CompiledArtifact) error {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, name)
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrArtifactWriteFailed, err), "path", path)
	}

	tmp, err := writeTemp(filepath.Dir(path), filepath.Base(path), artifact.Bytes())
	if err != nil {
		return zerr.With(errors.Join(domain.ErrArtifactWriteFailed, err), "path", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(errors.Join(domain.ErrArtifactWriteFailed, err), "path", path)
	}
	return nil
}
