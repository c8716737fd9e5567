// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package recordsrp realizes the generic records repository over the
// postgres adapter. There is exactly one implementation of the
// repo.Records capability set here; each entity kind obtains its own
// isolated collection by instantiating Repo with its model type and
// collection table name. No entity-specific rule lives at this layer.
package recordsrp

import (
	"context"

	"github.com/openshelf/libweb/pkg/adapter/db/postgres"
	"github.com/openshelf/libweb/pkg/core/repo"
)

// Repo is a records repository bound to one collection table.
// It adapts free connections and transactions uniformly; the loans
// use case depends on the Tx form in order to keep its two-collection
// mutations atomic.
type Repo[M repo.Record] struct {
	collection string
}

// New instantiates a records repository for the given collection
// table. The table must be one of the names created by
// postgres.InitSchema.
func New[M repo.Record](collection string) *Repo[M] {
	return &Repo[M]{collection: collection}
}

type connQueryer[M repo.Record] struct {
	collection string
	conn       *postgres.Conn
}

func (r *Repo[M]) Conn(c repo.Conn) repo.RecordsConnQueryer[M] {
	cc := c.(*postgres.Conn)
	return connQueryer[M]{collection: r.collection, conn: cc}
}

type txQueryer[M repo.Record] struct {
	collection string
	tx         *postgres.Tx
}

func (r *Repo[M]) Tx(tx repo.Tx) repo.RecordsTxQueryer[M] {
	tt := tx.(*postgres.Tx)
	return txQueryer[M]{collection: r.collection, tx: tt}
}

func (cq connQueryer[M]) Insert(ctx context.Context, rec M) error {
	return Insert[M](ctx, cq.conn, cq.collection, rec)
}

func (cq connQueryer[M]) Get(ctx context.Context, id string) (M, error) {
	return Get[M](ctx, cq.conn, cq.collection, id)
}

func (cq connQueryer[M]) FindBy(ctx context.Context, field string, value any) ([]M, error) {
	return FindBy[M](ctx, cq.conn, cq.collection, field, value)
}

func (cq connQueryer[M]) List(ctx context.Context) ([]M, error) {
	return List[M](ctx, cq.conn, cq.collection)
}

func (cq connQueryer[M]) Update(ctx context.Context, id string, fields map[string]any) (bool, error) {
	return Update[M](ctx, cq.conn, cq.collection, id, fields)
}

func (cq connQueryer[M]) UpdateIf(ctx context.Context, id string, fields map[string]any, guardField string, guardValue any) (bool, error) {
	return UpdateIf[M](ctx, cq.conn, cq.collection, id, fields, guardField, guardValue)
}

func (cq connQueryer[M]) Remove(ctx context.Context, id string) (bool, error) {
	return Remove[M](ctx, cq.conn, cq.collection, id)
}

func (tq txQueryer[M]) Insert(ctx context.Context, rec M) error {
	return Insert[M](ctx, tq.tx, tq.collection, rec)
}

func (tq txQueryer[M]) Get(ctx context.Context, id string) (M, error) {
	return Get[M](ctx, tq.tx, tq.collection, id)
}

func (tq txQueryer[M]) FindBy(ctx context.Context, field string, value any) ([]M, error) {
	return FindBy[M](ctx, tq.tx, tq.collection, field, value)
}

func (tq txQueryer[M]) List(ctx context.Context) ([]M, error) {
	return List[M](ctx, tq.tx, tq.collection)
}

func (tq txQueryer[M]) Update(ctx context.Context, id string, fields map[string]any) (bool, error) {
	return Update[M](ctx, tq.tx, tq.collection, id, fields)
}

func (tq txQueryer[M]) UpdateIf(ctx context.Context, id string, fields map[string]any, guardField string, guardValue any) (bool, error) {
	return UpdateIf[M](ctx, tq.tx, tq.collection, id, fields, guardField, guardValue)
}

func (tq txQueryer[M]) Remove(ctx context.Context, id string) (bool, error) {
	return Remove[M](ctx, tq.tx, tq.collection, id)
}
