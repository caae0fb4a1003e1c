package stashdb

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/S0me0neR0man/headstash/internal/config"
	"github.com/S0me0neR0man/headstash/internal/head"
)

type GUIDType string

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrBadCapacity    = errors.New("stored capacity is invalid")
)

// Pair one HTTP header
type Pair struct {
	Field string
	Value string
}

type record struct {
	mu      sync.RWMutex
	head    *head.Head
	created time.Time
}

// alive reports whether Remove has not released the buffer yet.
// Call with mu held.
func (r *record) alive() bool {
	return r.head.Capacity() > 0
}

// snapshot is the on-disk form of a record. Headers are stored as pairs and
// pushed again on restore, the buffer layout itself is never persisted.
type snapshot struct {
	Capacity int
	Created  time.Time
	Pairs    []Pair
}

// Stash the in-memory registry of header sets.
// Every set lives in its own fixed-capacity head.Head; a set is only ever
// appended to, read, or released as a whole.
type Stash struct {
	mu      sync.RWMutex
	records map[GUIDType]*record

	findSFG singleflight.Group

	conf  *config.Config
	sugar *zap.SugaredLogger
}

func NewStash(conf *config.Config, logger *zap.Logger) (*Stash, error) {
	s := &Stash{
		records: make(map[GUIDType]*record),
		conf:    conf,
		sugar:   logger.Sugar(),
	}

	if conf.Restore {
		err := s.loadFromDisk()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	return s, nil
}

// Insert stores a new header set and returns its guid.
// Either every pair is stored or the set is not created at all.
func (s *Stash) Insert(pairs []Pair) (GUIDType, error) {
	return s.insert(GUIDType(uuid.New().String()), s.conf.Capacity, time.Now(), pairs)
}

func (s *Stash) insert(guid GUIDType, capacity int, created time.Time, pairs []Pair) (GUIDType, error) {
	const msg = "insert:"

	h, err := head.New(capacity)
	if err != nil {
		return "", fmt.Errorf("%s %w", msg, err)
	}
	for _, p := range pairs {
		if err = h.Push(p.Field, p.Value); err != nil {
			h.Release()
			return "", fmt.Errorf("%s push %q: %w", msg, p.Field, err)
		}
	}

	s.mu.Lock()
	s.records[guid] = &record{head: h, created: created}
	s.mu.Unlock()

	s.sugar.Debugw("insert", "Guid", guid, "headers", h.Len(), "used", h.Used())
	return guid, nil
}

// Append adds one header to an existing set
func (s *Stash) Append(guid GUIDType, field, value string) error {
	rec, err := s.record(guid)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if !rec.alive() {
		return ErrRecordNotFound
	}

	if err = rec.head.Push(field, value); err != nil {
		return fmt.Errorf("append %q: %w", field, err)
	}
	s.sugar.Debugw("append", "Guid", guid, "field", field, "used", rec.head.Used())
	return nil
}

// AppendChunks adds one header received in pieces. On any error the set is
// left exactly as it was.
func (s *Stash) AppendChunks(guid GUIDType, fieldChunks, valueChunks [][]byte) error {
	const msg = "appendChunks:"
	rec, err := s.record(guid)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if !rec.alive() {
		return ErrRecordNotFound
	}

	m, err := rec.head.Mark()
	if err != nil {
		return fmt.Errorf("%s %w", msg, err)
	}
	err = pushChunks(m, fieldChunks, valueChunks)
	if err != nil {
		if cerr := m.Cancel(); cerr != nil {
			s.sugar.Errorw("appendChunks cancel", "Guid", guid, "error", cerr)
		}
		return fmt.Errorf("%s %w", msg, err)
	}

	s.sugar.Debugw("appendChunks", "Guid", guid, "chunks", len(fieldChunks)+len(valueChunks), "used", rec.head.Used())
	return nil
}

func pushChunks(m *head.Mark, fieldChunks, valueChunks [][]byte) error {
	for _, b := range fieldChunks {
		if err := m.PushField(b); err != nil {
			return err
		}
	}
	for _, b := range valueChunks {
		if err := m.PushValue(b); err != nil {
			return err
		}
	}
	return m.Commit()
}

// Get returns all headers of a set in insertion order
func (s *Stash) Get(guid GUIDType) ([]Pair, error) {
	rec, err := s.record(guid)
	if err != nil {
		return nil, err
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()
	if !rec.alive() {
		return nil, ErrRecordNotFound
	}

	s.sugar.Debugw("get", "Guid", guid, "headers", rec.head.Len())
	return collect(rec.head), nil
}

func collect(h *head.Head) []Pair {
	res := make([]Pair, 0, h.Len())
	c := head.NewCursor(h)
	for c.Next() {
		res = append(res, Pair{
			Field: strings.Clone(c.Field()),
			Value: strings.Clone(c.Value()),
		})
	}
	return res
}

// Find returns the value of the first header named field (case-insensitive),
// empty if the set has no such header.
//
// thread safe, identical concurrent lookups share one scan
func (s *Stash) Find(guid GUIDType, field string) (string, error) {
	res, err, shared := s.findSFG.Do(
		string(guid)+"\x00"+field,
		func() (interface{}, error) {
			rec, err := s.record(guid)
			if err != nil {
				return "", err
			}

			rec.mu.RLock()
			defer rec.mu.RUnlock()
			if !rec.alive() {
				return "", ErrRecordNotFound
			}

			return strings.Clone(rec.head.Find(field)), nil
		})

	if err != nil {
		return "", err
	}
	s.sugar.Debugw("find", "Guid", guid, "field", field, "shared", shared)
	return res.(string), nil
}

// Remove releases a header set
func (s *Stash) Remove(guid GUIDType) error {
	s.mu.Lock()
	rec, ok := s.records[guid]
	delete(s.records, guid)
	s.mu.Unlock()

	if !ok {
		return ErrRecordNotFound
	}

	rec.mu.Lock()
	rec.head.Release()
	rec.mu.Unlock()

	s.sugar.Debugw("remove", "Guid", guid)
	return nil
}

// Len returns the number of stored header sets
func (s *Stash) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

func (s *Stash) record(guid GUIDType) (*record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[guid]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return rec, nil
}

// SaveToDisk save data to disk
func (s *Stash) SaveToDisk(ctx context.Context) error {
	const msg = "saveToDisk:"

	m, err := s.copyData(ctx)
	if err != nil {
		return fmt.Errorf("%s %w", msg, err)
	}

	if err = os.MkdirAll(filepath.Dir(s.conf.StoreFile), 0755); err != nil {
		return fmt.Errorf("%s %w", msg, err)
	}
	file, err := os.OpenFile(s.conf.StoreFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("%s %w", msg, err)
	}
	defer file.Close()

	if err = gob.NewEncoder(file).Encode(m); err != nil {
		return fmt.Errorf("%s %w", msg, err)
	}

	s.sugar.Debugw("saveToDisk", "file", s.conf.StoreFile, "records", len(m))
	return file.Sync()
}

func (s *Stash) loadFromDisk() error {
	const msg = "loadFromDisk:"

	file, err := os.Open(s.conf.StoreFile)
	if err != nil {
		return err
	}
	defer file.Close()

	var m map[GUIDType]snapshot
	if err = gob.NewDecoder(file).Decode(&m); err != nil {
		return fmt.Errorf("%s %w", msg, err)
	}

	for guid, snap := range m {
		if snap.Capacity <= 0 {
			return fmt.Errorf("%s %s: %w", msg, guid, ErrBadCapacity)
		}
		if _, err = s.insert(guid, snap.Capacity, snap.Created, snap.Pairs); err != nil {
			return fmt.Errorf("%s %s: %w", msg, guid, err)
		}
	}

	s.sugar.Infow("loadFromDisk", "file", s.conf.StoreFile, "records", len(m))
	return nil
}

func (s *Stash) copyData(ctx context.Context) (map[GUIDType]snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ret := make(map[GUIDType]snapshot, len(s.records))
	for guid, rec := range s.records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec.mu.RLock()
		ret[guid] = snapshot{
			Capacity: rec.head.Capacity(),
			Created:  rec.created,
			Pairs:    collect(rec.head),
		}
		rec.mu.RUnlock()
	}

	return ret, nil
}
