// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memrepo is an internal helper for the test packages.
// It implements the repo.Records capability set over an in-process
// map of JSON documents, so the use case packages can be tested
// without a live database. Semantics mirror the postgres adapter:
// documents are whole-record JSON payloads, updates are shallow
// merges, field comparisons use the serialized text form, and rows
// with undecodable payloads are skipped by List.
//
// Mutations apply immediately; the fake transactions offer no
// rollback. Tests relying on rollback behavior belong to the
// integration suites running on a real database.
package memrepo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/openshelf/libweb/pkg/core/cerr"
	"github.com/openshelf/libweb/pkg/core/log"
	"github.com/openshelf/libweb/pkg/core/repo"
)

// Store keeps one collection of records as JSON documents in memory.
// It implements repo.Records[M]; the connection and transaction
// handles are accepted for interface compatibility and ignored.
type Store[M repo.Record] struct {
	mu   sync.RWMutex
	name string
	rows map[string]json.RawMessage
}

// NewStore creates an empty in-memory collection with the given name
// (used only in log and error messages).
func NewStore[M repo.Record](name string) *Store[M] {
	return &Store[M]{
		name: name,
		rows: make(map[string]json.RawMessage),
	}
}

func (s *Store[M]) Conn(repo.Conn) repo.RecordsConnQueryer[M] {
	return queryer[M]{s}
}

func (s *Store[M]) Tx(repo.Tx) repo.RecordsTxQueryer[M] {
	return queryer[M]{s}
}

// Corrupt replaces the payload stored under id with bytes which do
// not decode, so tests may assert the lenient-read policy.
func (s *Store[M]) Corrupt(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[id] = json.RawMessage(`{not-json`)
}

// Len returns the number of stored rows, corrupt ones included.
func (s *Store[M]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

type queryer[M repo.Record] struct {
	s *Store[M]
}

func (q queryer[M]) Insert(_ context.Context, rec M) error {
	id := rec.RecordID()
	if id == "" {
		return cerr.BadRequest(
			fmt.Errorf("record must have a non-empty id"),
		)
	}
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	if _, exists := q.s.rows[id]; exists {
		return cerr.Conflict(
			fmt.Errorf("id %q already exists in %q", id, q.s.name),
		)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	q.s.rows[id] = data
	return nil
}

func (q queryer[M]) Get(_ context.Context, id string) (rec M, err error) {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()
	data, exists := q.s.rows[id]
	if !exists {
		return rec, cerr.NotFound(
			fmt.Errorf("no %q record with id %q", q.s.name, id),
		)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf(
			"decoding %q record %q: %w", q.s.name, id, err,
		)
	}
	return rec, nil
}

func (q queryer[M]) FindBy(ctx context.Context, field string, value any) ([]M, error) {
	want, err := textValue(value)
	if err != nil {
		return nil, err
	}
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()
	recs := []M{}
	for id, data := range q.s.rows {
		doc := map[string]any{}
		if err := json.Unmarshal(data, &doc); err != nil {
			continue
		}
		got, err := textValue(doc[field])
		if err != nil || got != want {
			continue
		}
		var rec M
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf(
				"decoding %q record %q: %w", q.s.name, id, err,
			)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (q queryer[M]) List(ctx context.Context) ([]M, error) {
	q.s.mu.RLock()
	defer q.s.mu.RUnlock()
	recs := []M{}
	for id, data := range q.s.rows {
		var rec M
		if err := json.Unmarshal(data, &rec); err != nil {
			log.Warn(
				ctx, "skipping undecodable record",
				slog.String("collection", q.s.name),
				slog.String("id", id),
				log.Err("error", err),
			)
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (q queryer[M]) Update(_ context.Context, id string, fields map[string]any) (bool, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	return q.mergeLocked(id, fields)
}

func (q queryer[M]) UpdateIf(_ context.Context, id string, fields map[string]any, guardField string, guardValue any) (bool, error) {
	want, err := textValue(guardValue)
	if err != nil {
		return false, err
	}
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	data, exists := q.s.rows[id]
	if !exists {
		return false, nil
	}
	doc := map[string]any{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return false, fmt.Errorf(
			"decoding %q record %q: %w", q.s.name, id, err,
		)
	}
	got, err := textValue(doc[guardField])
	if err != nil || got != want {
		return false, err
	}
	return q.mergeLocked(id, fields)
}

func (q queryer[M]) Remove(_ context.Context, id string) (bool, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	if _, exists := q.s.rows[id]; !exists {
		return false, nil
	}
	delete(q.s.rows, id)
	return true, nil
}

// mergeLocked shallow-merges fields onto the stored document.
// The caller must hold the write lock.
func (q queryer[M]) mergeLocked(id string, fields map[string]any) (bool, error) {
	data, exists := q.s.rows[id]
	if !exists {
		return false, nil
	}
	doc := map[string]any{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return false, fmt.Errorf(
			"decoding %q record %q: %w", q.s.name, id, err,
		)
	}
	// round-trip fields through JSON so merged values compare the
	// same as freshly stored ones
	patch, err := json.Marshal(fields)
	if err != nil {
		return false, fmt.Errorf("marshaling fields: %w", err)
	}
	normalized := map[string]any{}
	if err := json.Unmarshal(patch, &normalized); err != nil {
		return false, fmt.Errorf("normalizing fields: %w", err)
	}
	for k, v := range normalized {
		doc[k] = v
	}
	merged, err := json.Marshal(doc)
	if err != nil {
		return false, fmt.Errorf("marshaling merged record: %w", err)
	}
	q.s.rows[id] = merged
	return true, nil
}

// textValue renders value the way the postgres ->> operator renders a
// JSON field: strings bare, booleans as true/false, numbers in their
// JSON decimal form.
func textValue(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("marshaling comparison value: %w", err)
	}
	s := string(data)
	if strings.HasPrefix(s, `"`) {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return "", fmt.Errorf("unquoting comparison value: %w", err)
		}
		return unquoted, nil
	}
	return s, nil
}
