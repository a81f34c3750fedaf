package bolt

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"

	"simplechat/internal/storage"
)

var bucketName = []byte("kv")

// Medium stores key-value entries in a single-bucket bbolt file.
type Medium struct {
	db *bolt.DB
}

// Open opens (or creates) the bolt file at path and ensures the bucket
// exists.
func Open(path string) (*Medium, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt file %q", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create kv bucket")
	}
	return &Medium{db: db}, nil
}

func (m *Medium) Close() error {
	log.Debug().Msg("[bolt/Medium.Close] closing bolt file")
	return m.db.Close()
}

func (m *Medium) Get(key string) (string, bool, error) {
	var value string
	var found bool
	err := m.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get([]byte(key)); v != nil {
			value = string(v)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, errors.Wrapf(err, "get %q", key)
	}
	return value, found, nil
}

func (m *Medium) Set(key, value string) error {
	err := m.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), []byte(value))
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("[bolt/Medium.Set] put failed")
		return errors.Wrapf(err, "set %q", key)
	}
	return nil
}

func (m *Medium) Keys() ([]string, error) {
	var keys []string
	err := m.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "list keys")
	}
	return keys, nil
}

// RemoveAll recreates the bucket so the medium reflects an empty state
// exactly.
func (m *Medium) RemoveAll() error {
	err := m.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketName); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketName)
		return err
	})
	if err != nil {
		log.Error().Err(err).Msg("[bolt/Medium.RemoveAll] reset failed")
		return errors.Wrap(err, "remove all entries")
	}
	return nil
}

var _ storage.Medium = (*Medium)(nil)
