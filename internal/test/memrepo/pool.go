// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package memrepo

import (
	"context"
	"errors"

	"github.com/openshelf/libweb/pkg/core/repo"
)

// Pool is a no-op repo.Pool. It hands the handler a connection whose
// raw SQL methods fail; record access must go through a Store, which
// accepts and ignores the handles.
type Pool struct{}

func NewPool() *Pool {
	return &Pool{}
}

func (p *Pool) Conn(ctx context.Context, handler repo.ConnHandler) error {
	return handler(ctx, conn{})
}

var errNoSQL = errors.New("memrepo: raw SQL statements are not supported")

type conn struct{}

func (conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errNoSQL
}

func (conn) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, errNoSQL
}

func (conn) Tx(ctx context.Context, handler repo.TxHandler) error {
	return handler(ctx, tx{})
}

func (conn) IsConn() {}

type tx struct{}

func (tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errNoSQL
}

func (tx) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, errNoSQL
}

func (tx) IsTx() {}
