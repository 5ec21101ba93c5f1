package ports

import "go.trai.ch/temper/internal/core/domain"

// TimingCacheStore persists timing cache blobs.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type TimingCacheStore interface {
	// Lookup reads the blob stored under key. An empty key selects the fixed cache file.
	// It returns found=false without error when nothing is stored.
	Lookup(key string) (blob domain.TimingCacheBlob, found bool, err error)

	// Save persists blob under key. It never overwrites: an existing file yields domain.ErrCacheExists.
	Save(key string, blob domain.TimingCacheBlob) error

	// Path returns the file path used for key.
	Path(key string) string

	// Purge removes every timing cache file and returns how many were removed.
	Purge() (int, error)
}

// ArtifactStore persists compiled plans.
type ArtifactStore interface {
	// Write replaces the named artifact with data.
	Write(name string, artifact domain.CompiledArtifact) error
}
