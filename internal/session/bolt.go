package session

import (
	"context"
	"fmt"
	"time"

	"github.com/fivetwenty-io/formsynergy-client/internal/constants"
	bolt "go.etcd.io/bbolt"
)

// BoltBackend persists sessions in a bbolt file so they survive process
// restarts, which is what a CLI needs to keep its access point between runs.
type BoltBackend struct {
	db     *bolt.DB
	bucket []byte
}

// NewBoltBackend opens (or creates) the database at path.
func NewBoltBackend(path, bucket string) (*BoltBackend, error) {
	if path == "" {
		return nil, constants.ErrBoltPathRequired
	}

	if bucket == "" {
		bucket = constants.DefaultSessionBucket
	}

	db, err := bolt.Open(path, constants.ConfigFilePerm, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("failed to create session bucket: %w", err)
		}

		return nil
	})
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	return &BoltBackend{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

// Load implements Backend.
func (b *BoltBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte

	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(b.bucket)
		if bucket == nil {
			return constants.ErrBucketNotFound
		}

		data := bucket.Get([]byte(key))
		if data != nil {
			// bbolt values are only valid inside the transaction.
			value = append([]byte(nil), data...)
		}

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return value, value != nil, nil
}

// Save implements Backend.
func (b *BoltBackend) Save(ctx context.Context, key string, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(b.bucket)
		if bucket == nil {
			return constants.ErrBucketNotFound
		}

		return bucket.Put([]byte(key), value)
	})
}

// Remove implements Backend.
func (b *BoltBackend) Remove(ctx context.Context, key string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(b.bucket)
		if bucket == nil {
			return constants.ErrBucketNotFound
		}

		return bucket.Delete([]byte(key))
	})
}

// Close implements Backend.
func (b *BoltBackend) Close() error {
	return b.db.Close()
}
