package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/zorkosss/GameHub/internal/domain"
)

// Bucket names
var (
	bucketGames = []byte("games")
	bucketMeta  = []byte("meta")
)

const (
	keySnapshot = "snapshot"
	keySavedAt  = "saved_at"
)

// LibraryStore implements domain.Store using BoltDB. The snapshot is a
// disposable cache of backend state, kept only so the UI can paint the
// last known library before the first refresh lands.
type LibraryStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// New opens (or creates) the store under baseCacheDir. The database is
// namespaced per backend URL so switching backends never mixes
// libraries. An empty baseCacheDir yields a memory-only store.
func New(baseCacheDir, backendURL string) (*LibraryStore, error) {
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &LibraryStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if backendURL != "" {
		dir = filepath.Join(baseCacheDir, hashBackendURL(backendURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "gamehub.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketGames, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &LibraryStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashBackendURL(backendURL string) string {
	normalized := strings.TrimRight(strings.ToLower(backendURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *LibraryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *LibraryStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *LibraryStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	// Update memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	// Write to BoltDB
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

// === Snapshot ===

// GetSnapshot returns the persisted entry list, if any.
func (s *LibraryStore) GetSnapshot() ([]domain.GameEntry, bool) {
	var entries []domain.GameEntry
	ok := s.get(bucketGames, keySnapshot, &entries)
	return entries, ok
}

// SaveSnapshot replaces the persisted entry list wholesale.
func (s *LibraryStore) SaveSnapshot(entries []domain.GameEntry) error {
	if err := s.set(bucketGames, keySnapshot, entries); err != nil {
		return err
	}
	return s.set(bucketMeta, keySavedAt, time.Now().Unix())
}

// SavedAt returns when the snapshot was last persisted.
func (s *LibraryStore) SavedAt() (time.Time, bool) {
	var ts int64
	if !s.get(bucketMeta, keySavedAt, &ts) || ts == 0 {
		return time.Time{}, false
	}
	return time.Unix(ts, 0), true
}

// InvalidateAll drops everything cached, in memory and on disk.
func (s *LibraryStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketGames, bucketMeta} {
			b := tx.Bucket(bucket)
			if b == nil {
				continue
			}
			c := b.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
