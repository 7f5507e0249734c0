// Package session provides a thin bbolt wrapper for wander's client-side
// session state: the auth bearer token and the two most-recent generation
// results (one plan, one suggestion), each with its weather and places
// side-data snapshot.
//
// Design philosophy: last-write-wins, no TTL, no locking beyond bbolt's own.
// Whichever command is running owns the store for the duration of the call.
//
// Buckets:
//
//	session — auth_token
//	results — holidayPlan, destinationSuggestions
//	_meta   — internal: schema version, created_at
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/dstrand/wander/internal/api"
	"github.com/dstrand/wander/internal/trip"
)

// Current schema version. Bump when bucket layout or key format changes.
const schemaVersion = 1

// Bucket name constants.
var (
	bucketSession  = []byte("session")
	bucketResults  = []byte("results")
	bucketInternal = []byte("_meta")
)

// Storage keys, named after the browser-storage keys the backend's web client
// uses for the same data.
const (
	keyToken             = "auth_token"
	KeyPlanResult        = "holidayPlan"
	KeySuggestionsResult = "destinationSuggestions"
)

// ResultKey returns the storage key for a generation result of the given kind.
func ResultKey(kind trip.Kind) string {
	if kind == trip.KindSuggest {
		return KeySuggestionsResult
	}
	return KeyPlanResult
}

// StoredResult is the cached outcome of one generation call: the submitted
// parameters, the raw payload exactly as the backend returned it, and the
// side data fetched alongside it. Raw is kept unparsed so re-rendering goes
// through the same normalization path as a freshly fetched trip.
type StoredResult struct {
	Kind      trip.Kind          `json:"kind"`
	Params    trip.Params        `json:"params"`
	Raw       json.RawMessage    `json:"raw"`
	Weather   []trip.WeatherDay  `json:"weather,omitempty"`
	Places    *trip.PlacesResult `json:"places,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// Store wraps a bbolt database.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the bbolt database at path. Parent directories are
// created automatically. Runs schema migrations on every open.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening db %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the filesystem path of the open database.
func (s *Store) Path() string {
	return s.db.Path()
}

// migrate ensures all buckets exist and schema is current.
func (s *Store) migrate() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketSession, bucketResults, bucketInternal} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("creating bucket %s: %w", name, err)
			}
		}
		meta := tx.Bucket(bucketInternal)
		if meta.Get([]byte("schema_version")) == nil {
			if err := meta.Put([]byte("schema_version"), []byte(fmt.Sprintf("%d", schemaVersion))); err != nil {
				return err
			}
			if err := meta.Put([]byte("created_at"), []byte(time.Now().UTC().Format(time.RFC3339))); err != nil {
				return err
			}
		}
		return nil
	})
}

// ─── Token ────────────────────────────────────────────────────────────────────

// Token returns the stored bearer token, or "" when none is stored. It
// implements api.TokenSource; read failures collapse to "" so an unreadable
// store behaves like a logged-out one.
func (s *Store) Token() string {
	var token string
	_ = s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketSession).Get([]byte(keyToken)); v != nil {
			token = string(v)
		}
		return nil
	})
	return token
}

// SetToken stores the bearer token.
func (s *Store) SetToken(token string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Put([]byte(keyToken), []byte(token))
	})
}

// ClearToken removes the stored bearer token.
func (s *Store) ClearToken() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Delete([]byte(keyToken))
	})
}

// ─── Generation Results ───────────────────────────────────────────────────────

// PutResult caches a generation result under its kind's key, stamping
// CreatedAt. The previous result of the same kind is overwritten.
func (s *Store) PutResult(res StoredResult) error {
	res.CreatedAt = time.Now().UTC()
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketResults).Put([]byte(ResultKey(res.Kind)), data)
	})
}

// GetResult retrieves the cached result for a kind.
// Returns (res, true, nil) if found, (zero, false, nil) if not.
func (s *Store) GetResult(kind trip.Kind) (StoredResult, bool, error) {
	var res StoredResult
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketResults).Get([]byte(ResultKey(kind)))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &res)
	})
	if err != nil {
		return StoredResult{}, false, err
	}
	return res, found, nil
}

// ClearResults removes both cached generation results.
func (s *Store) ClearResults() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketResults)
		for _, key := range []string{KeyPlanResult, KeySuggestionsResult} {
			if err := b.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

var _ api.TokenSource = (*Store)(nil)
