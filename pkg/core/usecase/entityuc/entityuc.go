// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package entityuc contains the generic entity UseCase: a thin facade
// which exposes the records repository operations per entity kind,
// adding no business rule of its own. It exists so that higher-level
// components and the RESTful resources depend on a narrow per-entity
// contract instead of the raw store. One instantiation serves each of
// the three entity kinds.
package entityuc

import (
	"context"
	"fmt"

	"github.com/openshelf/libweb/pkg/core/cerr"
	"github.com/openshelf/libweb/pkg/core/repo"
)

// UseCase represents the pass-through use case of one entity kind.
// It holds a database connection pool and the entity's records
// repository instance (to be guided with pool connections).
type UseCase[M repo.Record] struct {
	pool repo.Pool
	recs repo.Records[M]
}

// New instantiates an entity use case for the M entity kind.
func New[M repo.Record](p repo.Pool, r repo.Records[M]) *UseCase[M] {
	return &UseCase[M]{pool: p, recs: r}
}

// Create persists the rec record, delegating the duplicate-ID and
// empty-ID checks to the store. The caller supplies the record ID;
// this use case never generates one.
func (uc *UseCase[M]) Create(ctx context.Context, rec M) (err error) {
	return uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return uc.recs.Conn(c).Insert(ctx, rec)
	})
}

// List returns all records of the entity's collection.
func (uc *UseCase[M]) List(ctx context.Context) (recs []M, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		recs, err = uc.recs.Conn(c).List(ctx)
		return err
	})
	if err != nil {
		recs = nil
	}
	return
}

// Get returns the record stored under id, or cerr.NotFound.
func (uc *UseCase[M]) Get(ctx context.Context, id string) (rec M, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		rec, err = uc.recs.Conn(c).Get(ctx, id)
		return err
	})
	return
}

// FindBy returns all records whose named field stores value.
func (uc *UseCase[M]) FindBy(ctx context.Context, field string, value any) (recs []M, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		recs, err = uc.recs.Conn(c).FindBy(ctx, field, value)
		return err
	})
	if err != nil {
		recs = nil
	}
	return
}

// First returns the first record whose named field stores value, or
// cerr.NotFound when nothing matches. The members resource uses it to
// serve the national-ID lookup.
func (uc *UseCase[M]) First(ctx context.Context, field string, value any) (rec M, err error) {
	recs, err := uc.FindBy(ctx, field, value)
	if err != nil {
		return rec, err
	}
	if len(recs) == 0 {
		return rec, cerr.NotFound(
			fmt.Errorf("no record with %s = %v", field, value),
		)
	}
	return recs[0], nil
}

// Update shallow-merges fields onto the record stored under id and
// reports whether a record was modified.
func (uc *UseCase[M]) Update(ctx context.Context, id string, fields map[string]any) (ok bool, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		ok, err = uc.recs.Conn(c).Update(ctx, id, fields)
		return err
	})
	return
}

// Delete removes the record stored under id and reports whether a
// record was removed. Loan history referencing the removed entity is
// not guarded; the store keeps no referential integrity.
func (uc *UseCase[M]) Delete(ctx context.Context, id string) (ok bool, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		ok, err = uc.recs.Conn(c).Remove(ctx, id)
		return err
	})
	return
}
