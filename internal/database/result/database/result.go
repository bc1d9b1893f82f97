package database

import (
	"encoding/json"
	"fmt"

	"github.com/bloops-games/fishbowl/internal/byteutil"
	"github.com/bloops-games/fishbowl/internal/cache"
	"github.com/bloops-games/fishbowl/internal/database"
	"github.com/bloops-games/fishbowl/internal/database/result/model"
	bolt "go.etcd.io/bbolt"
)

const (
	bucket   = "results"
	cacheKey = "results"
)

var ErrNotFound = fmt.Errorf("not found")

func New(db *database.DB, cache cache.Cache) *DB {
	return &DB{rDB: db, cache: cache}
}

type DB struct {
	rDB *database.DB

	cache cache.Cache
}

// key orders results by finish time, the id breaking ties.
func (db *DB) key(m model.Result) ([]byte, error) {
	binaryID, err := m.ID.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("uuid binary: %w", err)
	}

	return append(byteutil.EncodeInt64ToBytes(m.FinishedAt.UnixNano()), binaryID...), nil
}

// FetchAll returns every archived result, oldest first.
func (db *DB) FetchAll() ([]model.Result, error) {
	if db.cache != nil {
		if v, ok := db.cache.Get(cacheKey); ok {
			return v.([]model.Result), nil
		}
	}

	var list []model.Result
	if err := db.rDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return ErrNotFound
		}

		if err := b.ForEach(func(k, v []byte) error {
			var result model.Result
			if err := json.Unmarshal(v, &result); err != nil {
				return fmt.Errorf("json unmarshal: %w", err)
			}
			list = append(list, result)
			return nil
		}); err != nil {
			return fmt.Errorf("bucket for each: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("view transaction: %w", err)
	}

	if db.cache != nil {
		db.cache.Add(cacheKey, list)
	}

	return list, nil
}

// FetchLatest returns up to n results, newest first.
func (db *DB) FetchLatest(n int) ([]model.Result, error) {
	var list []model.Result
	if err := db.rDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return ErrNotFound
		}

		c := b.Cursor()
		for k, v := c.Last(); k != nil && len(list) < n; k, v = c.Prev() {
			var result model.Result
			if err := json.Unmarshal(v, &result); err != nil {
				return fmt.Errorf("json unmarshal: %w", err)
			}
			list = append(list, result)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("view transaction: %w", err)
	}

	return list, nil
}

func (db *DB) Add(m model.Result) error {
	tx, err := db.rDB.DB.Begin(true)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	defer tx.Rollback() //nolint

	b, err := tx.CreateBucketIfNotExists([]byte(bucket))
	if err != nil {
		return fmt.Errorf("can not create bucket %s: %w", bucket, err)
	}

	key, err := db.key(m)
	if err != nil {
		return err
	}

	bytes, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if err := b.Put(key, bytes); err != nil {
		return fmt.Errorf("put to bucket: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	if db.cache != nil {
		db.cache.Delete(cacheKey)
	}

	return nil
}
