package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bloops-games/fishbowl/internal/byteutil"
	"github.com/bloops-games/fishbowl/internal/cache"
	"github.com/bloops-games/fishbowl/internal/database"
	"github.com/bloops-games/fishbowl/internal/database/stat/model"
	fishbowl "github.com/bloops-games/fishbowl/internal/fishbowl/model"
	bolt "go.etcd.io/bbolt"
)

const prefix = "stat:"

var ErrNotFound = fmt.Errorf("not found")

func New(db *database.DB, cache cache.Cache) *DB {
	return &DB{sDB: db, cache: cache}
}

type DB struct {
	sDB *database.DB

	cache cache.Cache
}

// Bucket is the per-player bucket. Names are matched case-insensitively.
func (db *DB) Bucket(player string) []byte {
	return []byte(prefix + fishbowl.NormalizeText(player))
}

func (db *DB) key(m model.Stat) ([]byte, error) {
	binaryID, err := m.ID.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("uuid binary: %w", err)
	}

	return append(byteutil.EncodeInt64ToBytes(m.CreatedAt.UnixNano()), binaryID...), nil
}

func (db *DB) FetchProfileStat(player string) (model.AggregationStat, error) {
	var aggregationStat model.AggregationStat
	var sumAnswers time.Duration

	stats, err := db.FetchByPlayer(player)
	if err != nil {
		return aggregationStat, fmt.Errorf("fetch by player: %w", err)
	}

	for _, stat := range stats {
		aggregationStat.Count++
		aggregationStat.TurnsTaken += stat.TurnsTaken
		if stat.Conclusion == model.ConclusionWin {
			aggregationStat.Wins++
		}

		if stat.CorrectCount == 0 {
			continue
		}

		if aggregationStat.BestAnswer == 0 || stat.BestAnswer < aggregationStat.BestAnswer {
			aggregationStat.BestAnswer = stat.BestAnswer
		}
		if stat.WorstAnswer > aggregationStat.WorstAnswer {
			aggregationStat.WorstAnswer = stat.WorstAnswer
		}

		sumAnswers += stat.AverageAnswer * time.Duration(stat.CorrectCount)
		aggregationStat.CorrectCount += stat.CorrectCount
	}

	if aggregationStat.CorrectCount > 0 {
		aggregationStat.AvgAnswer = sumAnswers / time.Duration(aggregationStat.CorrectCount)
	}

	return aggregationStat, nil
}

// FetchByPlayer returns the player's games, oldest first.
func (db *DB) FetchByPlayer(player string) ([]model.Stat, error) {
	var list []model.Stat
	bucket := db.Bucket(player)
	if db.cache != nil {
		if v, ok := db.cache.Get(string(bucket)); ok {
			return v.([]model.Stat), nil
		}
	}

	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return ErrNotFound
		}

		if err := b.ForEach(func(k, v []byte) error {
			var stat model.Stat
			if err := json.Unmarshal(v, &stat); err != nil {
				return fmt.Errorf("json unmarshal: %w", err)
			}
			list = append(list, stat)
			return nil
		}); err != nil {
			return fmt.Errorf("bucket for each: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("view transaction: %w", err)
	}

	if db.cache != nil {
		db.cache.Add(string(bucket), list)
	}

	return list, nil
}

// Add stores every stat in one transaction.
func (db *DB) Add(stats ...model.Stat) error {
	tx, err := db.sDB.DB.Begin(true)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	defer tx.Rollback() //nolint

	for _, m := range stats {
		bucket := db.Bucket(m.Player)
		b, err := tx.CreateBucketIfNotExists(bucket)
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
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	if db.cache != nil {
		for _, m := range stats {
			db.cache.Delete(string(db.Bucket(m.Player)))
		}
	}

	return nil
}
