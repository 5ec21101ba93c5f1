package domain

import "path/filepath"

const (
	// DefaultCacheFile is the name of the persisted timing cache.
	DefaultCacheFile = "model.cache"

	// DefaultPlanFile is the name of the serialized plan written by --save-plan.
	DefaultPlanFile = "model.plan"

	// CacheExt is the extension shared by every timing cache file.
	CacheExt = ".cache"

	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "temper.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// CacheFileName returns the timing cache file name for the given key.
// An empty key selects the fixed file name; otherwise the key is inserted before the extension.
func CacheFileName(base, key string) string {
	if key == "" {
		return base
	}
	ext := filepath.Ext(base)
	if ext == "" {
		ext = CacheExt
	}
	stem := base[:len(base)-len(filepath.Ext(base))]
	return stem + "-" + key + ext
}
