package retrieval

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

var (
	ckptBucketMeta    = []byte("meta")
	ckptBucketResults = []byte("results")
	ckptKeySeen       = []byte("seen")
)

// ErrNoCheckpoint is returned when the checkpoint database holds no
// saved ranking state.
var ErrNoCheckpoint = errors.New("retrieval: no checkpoint saved")

// Checkpointer receives the running per-query results after each scored
// batch, plus the number of articles seen so far.
type Checkpointer interface {
	Save(results []QueryResult, seen int) error
}

// BoltCheckpoint persists the running top-K state in a bbolt database.
// A multi-day collection scan can then be inspected or resumed from the
// last completed batch instead of starting over.
type BoltCheckpoint struct {
	db *bolt.DB
}

// OpenCheckpoint opens or creates the checkpoint database at path.
func OpenCheckpoint(path string) (*BoltCheckpoint, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{
		NoSync: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open checkpoint db: %w", err)
	}
	return &BoltCheckpoint{db: db}, nil
}

func (c *BoltCheckpoint) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Save replaces the stored state with the current per-query results in a
// single transaction. Syncs to disk so the state survives crashes (bbolt
// runs with NoSync; explicit Sync at batch boundaries provides
// durability).
func (c *BoltCheckpoint) Save(results []QueryResult, seen int) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		mb, err := tx.CreateBucketIfNotExists(ckptBucketMeta)
		if err != nil {
			return err
		}
		seenKey := make([]byte, 8)
		binary.BigEndian.PutUint64(seenKey, uint64(seen))
		if err := mb.Put(ckptKeySeen, seenKey); err != nil {
			return err
		}

		// recreate results bucket to clear stale data
		if err := tx.DeleteBucket(ckptBucketResults); err != nil && err != bolt.ErrBucketNotFound {
			return fmt.Errorf("delete results bucket: %w", err)
		}
		rb, err := tx.CreateBucket(ckptBucketResults)
		if err != nil {
			return err
		}
		for i, r := range results {
			data, err := json.Marshal(r)
			if err != nil {
				return fmt.Errorf("marshal result %d: %w", i, err)
			}
			key := make([]byte, 4)
			binary.BigEndian.PutUint32(key, uint32(i))
			if err := rb.Put(key, data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return c.db.Sync()
}

// Load returns the last saved per-query results and the article count at
// the time of the save. ErrNoCheckpoint when nothing was saved yet.
func (c *BoltCheckpoint) Load() ([]QueryResult, int, error) {
	var (
		results []QueryResult
		seen    int
	)
	err := c.db.View(func(tx *bolt.Tx) error {
		mb := tx.Bucket(ckptBucketMeta)
		if mb == nil {
			return ErrNoCheckpoint
		}
		seenData := mb.Get(ckptKeySeen)
		if seenData == nil {
			return ErrNoCheckpoint
		}
		seen = int(binary.BigEndian.Uint64(seenData))

		rb := tx.Bucket(ckptBucketResults)
		if rb == nil {
			return nil
		}
		return rb.ForEach(func(_, v []byte) error {
			var r QueryResult
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("unmarshal checkpointed result: %w", err)
			}
			results = append(results, r)
			return nil
		})
	})
	if err != nil {
		return nil, 0, err
	}
	return results, seen, nil
}
