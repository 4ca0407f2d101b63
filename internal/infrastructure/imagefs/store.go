package imagefs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/modulargunworks/catalog/internal/domain"
	"github.com/rs/zerolog"
)

// DefaultListingTTL bounds how long a directory listing is reused
const DefaultListingTTL = 10 * time.Minute

// Store lists image directories on the local filesystem.
// Listings are cached so a run touches each directory once.
type Store struct {
	cache  domain.CacheRepository
	ttl    time.Duration
	logger zerolog.Logger

	mu   sync.Mutex
	keys map[string]struct{}
}

// NewStore creates a filesystem image store; cache may be nil
func NewStore(cache domain.CacheRepository, ttl time.Duration, logger zerolog.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultListingTTL
	}
	return &Store{
		cache:  cache,
		ttl:    ttl,
		logger: logger,
		keys:   make(map[string]struct{}),
	}
}

// List returns the sorted names of the regular files in dir.
// A directory that does not exist yields an empty listing.
func (s *Store) List(ctx context.Context, dir string) ([]string, error) {
	key := listingKey(dir)
	if s.cache != nil {
		if v, err := s.cache.Get(ctx, key); err == nil {
			if names, ok := v.([]string); ok {
				return names, nil
			}
		}
	}

	names, err := readNames(dir)
	if err != nil {
		s.logger.Warn().Err(err).Str("dir", dir).Msg("list image directory failed")
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, names, s.ttl); err == nil {
			s.mu.Lock()
			s.keys[key] = struct{}{}
			s.mu.Unlock()
		}
	}
	return names, nil
}

// Exists reports whether dir holds a regular file called name
func (s *Store) Exists(ctx context.Context, dir, name string) bool {
	names, err := s.List(ctx, dir)
	if err != nil {
		return false
	}
	i := sort.SearchStrings(names, name)
	return i < len(names) && names[i] == name
}

// Reset forgets every cached listing
func (s *Store) Reset(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.keys {
		_ = s.cache.Delete(ctx, key)
	}
	s.keys = make(map[string]struct{})
}

func listingKey(dir string) string {
	return "imagefs:dir:" + filepath.Clean(dir)
}

func readNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
