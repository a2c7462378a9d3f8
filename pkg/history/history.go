// Package history keeps a local journal of finished calls. Records are
// msgpack-encoded into BadgerDB under date-partitioned keys, so
// lexicographic key order matches chronological order and time-range
// scans stay cheap.
package history

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/kaiwastudio/kaiwa/pkg/session"
)

// CallRecord is one finished call.
type CallRecord struct {
	// ID is the unique record identifier. Assigned on append when
	// empty.
	ID string `json:"id" msgpack:"id"`

	// StartedAt and EndedAt bound the call.
	StartedAt time.Time `json:"started_at" msgpack:"started_at"`
	EndedAt   time.Time `json:"ended_at" msgpack:"ended_at"`

	// Transcript is the finalized utterance log.
	Transcript []session.TranscriptEvent `json:"transcript" msgpack:"transcript"`

	// ImageCaptures and AudioCaptures count submitted artifacts.
	ImageCaptures int `json:"image_captures,omitempty" msgpack:"image_captures,omitempty"`
	AudioCaptures int `json:"audio_captures,omitempty" msgpack:"audio_captures,omitempty"`
}

// Journal is the call history store.
type Journal struct {
	db *badger.DB
}

// Open opens (or creates) the journal at dir.
func Open(dir string) (*Journal, error) {
	if dir == "" {
		return nil, errors.New("history: dir is required")
	}
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a journal with no disk persistence. Used by tests
// and by callers that only want the in-process view.
func OpenInMemory() (*Journal, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Journal, error) {
	db, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("history: open: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the journal.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Key layout:
//
//	call:{YYYYMMDD}:{ts_ns} → msgpack-encoded CallRecord
//
// The date partition plus the nanosecond timestamp gives total
// chronological ordering.
func recordKey(startedAt time.Time) []byte {
	t := startedAt.UTC()
	return []byte("call:" + t.Format("20060102") + ":" + strconv.FormatInt(t.UnixNano(), 10))
}

var recordPrefix = []byte("call:")

// Append stores a finished call. A zero StartedAt is stamped with the
// current time; an empty ID gets a fresh one.
func (j *Journal) Append(rec *CallRecord) error {
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	data, err := msgpack.Marshal(rec)
	if err != nil {
		return fmt.Errorf("history: encode record: %w", err)
	}
	return j.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(rec.StartedAt), data)
	})
}

// All iterates every record in chronological order.
func (j *Journal) All() iter.Seq2[*CallRecord, error] {
	return func(yield func(*CallRecord, error) bool) {
		err := j.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = recordPrefix
			it := txn.NewIterator(opts)
			defer it.Close()
			for it.Seek(recordPrefix); it.ValidForPrefix(recordPrefix); it.Next() {
				var rec CallRecord
				err := it.Item().Value(func(val []byte) error {
					return msgpack.Unmarshal(val, &rec)
				})
				if err != nil {
					if !yield(nil, fmt.Errorf("history: decode record: %w", err)) {
						return nil
					}
					continue
				}
				if !yield(&rec, nil) {
					return nil
				}
			}
			return nil
		})
		if err != nil {
			yield(nil, fmt.Errorf("history: scan: %w", err))
		}
	}
}

// Recent returns the latest n records, newest first.
func (j *Journal) Recent(n int) ([]*CallRecord, error) {
	if n <= 0 {
		return nil, nil
	}
	var out []*CallRecord
	err := j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = recordPrefix
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()
		// Reverse iteration seeks to the end of the prefix range.
		seek := append(append([]byte{}, recordPrefix...), 0xff)
		for it.Seek(seek); it.ValidForPrefix(recordPrefix) && len(out) < n; it.Next() {
			var rec CallRecord
			err := it.Item().Value(func(val []byte) error {
				return msgpack.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("history: decode record: %w", err)
			}
			out = append(out, &rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
