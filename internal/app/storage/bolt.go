package storage

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	bucketName = "local_storage"

	// lockTimeout bounds the wait for another wgdash process holding the file.
	lockTimeout = 2 * time.Second
)

// boltStore keeps every key in one bbolt bucket.
// The database is opened per operation so that a running dashboard and CLI commands can
// share the same file; bbolt's file lock serializes them.
type boltStore struct {
	path string
}

func newBoltStore(path string) (*boltStore, error) {
	s := &boltStore{path: path}

	err := s.update(func(b *bolt.Bucket) error { return nil })
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *boltStore) open() (*bolt.DB, error) {
	db, err := bolt.Open(s.path, 0o600, &bolt.Options{Timeout: lockTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage %s: %w", s.path, err)
	}
	return db, nil
}

func (s *boltStore) update(fn func(b *bolt.Bucket) error) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		return fn(b)
	})
}

func (s *boltStore) Get(key string) (string, bool, error) {
	db, err := s.open()
	if err != nil {
		return "", false, err
	}
	defer db.Close()

	var (
		value string
		found bool
	)

	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return errors.New("local storage bucket is missing")
		}

		// the slice returned by Get is only valid inside the transaction
		if v := b.Get([]byte(key)); v != nil {
			value = string(v)
			found = true
		}
		return nil
	})

	return value, found, err
}

func (s *boltStore) Set(key, value string) error {
	return s.update(func(b *bolt.Bucket) error {
		return b.Put([]byte(key), []byte(value))
	})
}

func (s *boltStore) SetMany(values map[string]string) error {
	return s.update(func(b *bolt.Bucket) error {
		for key, value := range values {
			if err := b.Put([]byte(key), []byte(value)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *boltStore) Remove(keys ...string) error {
	return s.update(func(b *bolt.Bucket) error {
		for _, key := range keys {
			if err := b.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *boltStore) Close() error {
	return nil
}
