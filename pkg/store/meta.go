package store

import (
	bolt "go.etcd.io/bbolt"
	. "src.retui.sh/pkg/store/storedefs"
)

func init() {
	initDB["initialize metadata table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketMeta))
		return err
	}
}

// Meta gets the value of a metadata entry, such as the terminal size of the
// recorded session.
func (s *dbStore) Meta(n string) (string, error) {
	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketMeta))
		v := b.Get([]byte(n))
		if v == nil {
			return ErrNoMeta
		}
		value = string(v)
		return nil
	})
	return value, err
}

// SetMeta sets the value of a metadata entry.
func (s *dbStore) SetMeta(n, v string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketMeta))
		return b.Put([]byte(n), []byte(v))
	})
}

// DelMeta deletes a metadata entry.
func (s *dbStore) DelMeta(n string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketMeta))
		return b.Delete([]byte(n))
	})
}
