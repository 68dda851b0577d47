package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

const tempDir = ".tmp"

// Disk is a KV where every key is one file under the configured base path.
type Disk struct {
	d        *diskv.Diskv
	basePath string
}

var _ KV = (*Disk)(nil)

// Load creates a Disk store using the provided config. A nil config loads
// lumina's configuration.
func Load(cfg Config) (*Disk, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &Disk{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		TempDir:           filepath.Join(basePath, tempDir),
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

// BasePath is the directory holding the key files.
func (s *Disk) BasePath() string {
	return s.basePath
}

func (s *Disk) Get(key string) (string, bool, error) {
	if !validKey(key) {
		return "", false, ErrInvalidKey
	}
	if !s.d.Has(key) {
		return "", false, nil
	}
	// Read past the cache: another process may have rewritten the file.
	r, err := s.d.ReadStream(key, true)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("store: read %s: %w", key, err)
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return "", false, fmt.Errorf("store: read %s: %w", key, err)
	}
	return string(b), true, nil
}

func (s *Disk) Set(key, value string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// Erase removes a key. Erasing a missing key is not an error.
func (s *Disk) Erase(key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	if !s.d.Has(key) {
		return nil
	}
	return s.d.Erase(key)
}

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
