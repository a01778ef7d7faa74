// Package snapshot persists the last loaded record set in a bbolt file so the
// responder can start serving when its zone directory is unavailable.
package snapshot

import (
	"encoding/binary"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/haukened/rr-authdns/internal/dns/common/clock"
	"github.com/haukened/rr-authdns/internal/dns/domain"
	"github.com/haukened/rr-authdns/internal/dns/gateways/wire"
)

var (
	bucketRecords = []byte("records")
	bucketMeta    = []byte("meta")

	keyVersion = []byte("version")
	keyUpdated = []byte("updated")
)

// Meta describes the stored snapshot.
type Meta struct {
	Version     uint64 // incremented by every Save
	UpdatedUnix int64  // seconds since epoch, 0 if never saved
	Records     uint64
}

// Store is a bbolt-backed record snapshot.
type Store struct {
	db    *bbolt.DB
	clock clock.Clock
}

// Open opens (or creates) the database at path and ensures buckets exist.
func Open(path string, clk clock.Clock) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketRecords); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketMeta)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Store{db: db, clock: clk}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save replaces the stored records with records, preserving their order.
func (s *Store) Save(records []domain.Record) error {
	encoded := make([][]byte, 0, len(records))
	for _, r := range records {
		b, err := wire.EncodeResourceRecord(r.ResourceRecord())
		if err != nil {
			return fmt.Errorf("encode %s: %w", r.Name(), err)
		}
		encoded = append(encoded, b)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketRecords); err != nil {
			return err
		}
		b, err := tx.CreateBucket(bucketRecords)
		if err != nil {
			return err
		}
		for i, data := range encoded {
			if err := b.Put(u64(uint64(i)), data); err != nil {
				return err
			}
		}

		meta := tx.Bucket(bucketMeta)
		var version uint64
		if v := meta.Get(keyVersion); len(v) == 8 {
			version = binary.BigEndian.Uint64(v)
		}
		if err := meta.Put(keyVersion, u64(version+1)); err != nil {
			return err
		}
		return meta.Put(keyUpdated, u64(uint64(s.clock.Now().Unix())))
	})
}

// Load returns the stored records in the order they were saved.
func (s *Store) Load() ([]domain.Record, error) {
	var records []domain.Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRecords).ForEach(func(k, v []byte) error {
			rr, n, err := wire.DecodeResourceRecord(v, 0)
			if err != nil {
				return fmt.Errorf("record %x: %w", k, err)
			}
			if n != len(v) {
				return fmt.Errorf("record %x: %w: %d trailing bytes", k, wire.ErrMalformedMessage, len(v)-n)
			}
			rec, err := domain.RecordFromResourceRecord(rr)
			if err != nil {
				return fmt.Errorf("record %x: %w", k, err)
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Meta reads snapshot metadata. Errors yield a zero Meta.
func (s *Store) Meta() Meta {
	var m Meta
	_ = s.db.View(func(tx *bbolt.Tx) error {
		m.Records = uint64(tx.Bucket(bucketRecords).Stats().KeyN)
		b := tx.Bucket(bucketMeta)
		if v := b.Get(keyVersion); len(v) == 8 {
			m.Version = binary.BigEndian.Uint64(v)
		}
		if v := b.Get(keyUpdated); len(v) == 8 {
			m.UpdatedUnix = int64(binary.BigEndian.Uint64(v))
		}
		return nil
	})
	return m
}

func u64(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}
