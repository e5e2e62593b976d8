// Package store records the output of sessions in a bbolt database, so that
// they can be replayed later.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	"src.retui.sh/pkg/logutil"
	. "src.retui.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

// Buckets.
const (
	bucketFrame = "frame"
	bucketMeta  = "meta"
)

// Names of metadata.
const (
	// Name of the demo a recording was made from.
	MetaDemo = "demo"
)

// Functions that initialize the database. Each is run in its own transaction
// when a store is opened.
var initDB = map[string]func(*bolt.Tx) error{}

// DBStore is the permanent storage backend for recordings.
type DBStore interface {
	Store
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// NewStore creates a new Store from the given file.
func NewStore(dbname string) (DBStore, error) {
	db, err := bolt.Open(dbname, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new Store from a bolt DB.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	defer logger.Println("initialized store")
	st := &dbStore{db}

	for name, fn := range initDB {
		if err := db.Update(fn); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to %s: %w", name, err)
		}
	}
	return st, nil
}

// Close releases the database.
func (s *dbStore) Close() error {
	return s.db.Close()
}
