package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/mmcdole/whatsleft/internal/config"
	"github.com/mmcdole/whatsleft/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketPreferences = []byte("preferences")
	bucketItems       = []byte("items")
	bucketShopping    = []byte("shopping")
)

const flagTrue = "true"

// LocalStore implements domain.Store using BoltDB.
type LocalStore struct {
	db     *bolt.DB
	mu     sync.RWMutex // Protects memory cache
	closed bool

	// In-memory copy of every bucket. Source of truth in memory-only mode.
	cache map[string]map[string][]byte
}

var _ domain.Store = (*LocalStore)(nil)

// Open opens (or creates) the store at dbPath.
// An empty path gives a memory-only store with no persistence.
func Open(dbPath string) (*LocalStore, error) {
	s := &LocalStore{cache: make(map[string]map[string][]byte)}
	if dbPath == "" {
		return s, nil
	}

	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketPreferences, bucketItems, bucketShopping} {
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

	s.db = db
	return s, nil
}

// Close releases the database file. Further calls fail with domain.ErrStoreClosed.
func (s *LocalStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Preferences ===

// Flag reports whether key is set to "true". An absent key reads as false.
func (s *LocalStore) Flag(key domain.PreferenceKey) (bool, error) {
	if !key.Valid() {
		return false, fmt.Errorf("%w: %q", domain.ErrUnknownPreference, key)
	}
	data, ok, err := s.get(bucketPreferences, string(key))
	if err != nil || !ok {
		return false, err
	}
	return string(data) == flagTrue, nil
}

// SetFlag stores "true" under key
func (s *LocalStore) SetFlag(key domain.PreferenceKey) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPreference, key)
	}
	return s.put(bucketPreferences, string(key), []byte(flagTrue))
}

// ClearFlag removes key so it reads as absent again
func (s *LocalStore) ClearFlag(key domain.PreferenceKey) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPreference, key)
	}
	return s.delete(bucketPreferences, []string{string(key)})
}

// === Items ===

// GetItems returns all items ordered by the time they were added
func (s *LocalStore) GetItems() ([]domain.Item, error) {
	var items []domain.Item
	err := s.each(bucketItems, func(data []byte) error {
		var item domain.Item
		if err := json.Unmarshal(data, &item); err != nil {
			return err
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].AddedAt.Before(items[j].AddedAt)
	})
	return items, nil
}

// SaveItem inserts or replaces an item by ID
func (s *LocalStore) SaveItem(item domain.Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return s.put(bucketItems, item.ID, data)
}

// DeleteItems removes items by ID; unknown IDs are ignored
func (s *LocalStore) DeleteItems(ids []string) error {
	return s.delete(bucketItems, ids)
}

// === Shopping list ===

// GetShoppingList returns all shopping entries ordered by the time they were added
func (s *LocalStore) GetShoppingList() ([]domain.ShoppingItem, error) {
	var list []domain.ShoppingItem
	err := s.each(bucketShopping, func(data []byte) error {
		var entry domain.ShoppingItem
		if err := json.Unmarshal(data, &entry); err != nil {
			return err
		}
		list = append(list, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read shopping list: %w", err)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].AddedAt.Before(list[j].AddedAt)
	})
	return list, nil
}

// SaveShoppingItem inserts or replaces a shopping entry by ID
func (s *LocalStore) SaveShoppingItem(entry domain.ShoppingItem) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.put(bucketShopping, entry.ID, data)
}

// DeleteShoppingItems removes shopping entries by ID
func (s *LocalStore) DeleteShoppingItems(ids []string) error {
	return s.delete(bucketShopping, ids)
}

// === Generic helpers ===

func (s *LocalStore) get(bucket []byte, key string) ([]byte, bool, error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, false, domain.ErrStoreClosed
	}
	if data, ok := s.cache[string(bucket)][key]; ok {
		s.mu.RUnlock()
		return data, true, nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false, nil
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
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
	if err != nil || data == nil {
		return nil, false, err
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cacheBucket(bucket)[key] = data
	s.mu.Unlock()

	return data, true, nil
}

func (s *LocalStore) put(bucket []byte, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucket).Put([]byte(key), data)
		})
		if err != nil {
			return fmt.Errorf("failed to write %s/%s: %w", bucket, key, err)
		}
	}

	s.cacheBucket(bucket)[key] = data
	return nil
}

func (s *LocalStore) delete(bucket []byte, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucket)
			for _, key := range keys {
				if err := b.Delete([]byte(key)); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to delete from %s: %w", bucket, err)
		}
	}

	cached := s.cacheBucket(bucket)
	for _, key := range keys {
		delete(cached, key)
	}
	return nil
}

// each visits every value in bucket. Memory-only stores walk the cache.
func (s *LocalStore) each(bucket []byte, fn func(data []byte) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return domain.ErrStoreClosed
	}

	if s.db == nil {
		for _, data := range s.cache[string(bucket)] {
			if err := fn(data); err != nil {
				return err
			}
		}
		return nil
	}

	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			return fn(v)
		})
	})
}

// cacheBucket returns the cache map for bucket. Caller holds s.mu for writing.
func (s *LocalStore) cacheBucket(bucket []byte) map[string][]byte {
	m, ok := s.cache[string(bucket)]
	if !ok {
		m = make(map[string][]byte)
		s.cache[string(bucket)] = m
	}
	return m
}
