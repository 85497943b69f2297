// ABOUTME: Local guest storage backed by an embedded badger key-value store.
// ABOUTME: One fixed key per collection; values are JSON arrays, oldest first.
package guest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v3"
)

// Key names a logical collection in local storage.
type Key string

// Fixed storage keys.
const (
	KeyTanks           Key = "betta_guest_tanks"
	KeyFish            Key = "betta_guest_fish"
	KeyWaterReadings   Key = "betta_guest_water_readings"
	KeyFeedingLogs     Key = "betta_guest_feeding_logs"
	KeyWaterChanges    Key = "betta_guest_water_changes"
	KeyCareReminders   Key = "betta_care_reminders"
	KeyFeedingSchedule Key = "betta_feeding_schedule"
)

// Store is the device-local key-value store.
type Store struct {
	db *badger.DB
}

// Open opens or creates the store in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create guest directory: %w", err)
	}
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open guest store: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open guest store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// raw returns the stored bytes for key, or nil when the key is absent.
func (s *Store) raw(key Key) ([]byte, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return val, nil
}

// write replaces the value stored under key.
func (s *Store) write(key Key, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// readList decodes the array stored under key. Missing or malformed values
// read as empty.
func readList[T any](s *Store, key Key) ([]T, error) {
	data, err := s.raw(key)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, nil
	}
	return items, nil
}

// appendItem adds v to the end of the array stored under key.
func appendItem[T any](s *Store, key Key, v T) error {
	items, err := readList[T](s, key)
	if err != nil {
		return err
	}
	return s.write(key, append(items, v))
}

// Clear deletes every value stored under key.
func (s *Store) Clear(key Key) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("clear %s: %w", key, err)
	}
	return nil
}

// ClearRecords deletes the guest record collections. Care reminders and the
// feeding schedule stay on the device.
func (s *Store) ClearRecords() error {
	for _, key := range []Key{KeyTanks, KeyFish, KeyWaterReadings, KeyFeedingLogs, KeyWaterChanges} {
		if err := s.Clear(key); err != nil {
			return err
		}
	}
	return nil
}
