// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres adapts a PostgreSQL database, managed by the GORM
// framework over the pgx driver, as the storage backend of libweb.
// The database is used as a document store: each entity kind owns one
// table of (id, data) rows where data keeps the whole record as one
// JSONB document. Tables share no key space and no foreign keys are
// declared, matching the repository contract which leaves referential
// checks to the use cases layer.
package postgres

import (
	"context"
	"fmt"

	"github.com/openshelf/libweb/pkg/core/repo"
)

// Collection names of the three entity kinds.
const (
	BooksCollection   = "books"
	MembersCollection = "members"
	LoansCollection   = "loans"
)

// Collections lists every collection table managed by InitSchema.
var Collections = []string{
	BooksCollection,
	MembersCollection,
	LoansCollection,
}

// InitSchema creates the collection tables if they do not exist yet.
// It is idempotent and runs both from the `db init` command and at
// server start, so a fresh database needs no manual preparation.
func InitSchema(ctx context.Context, c repo.Conn) error {
	for _, name := range Collections {
		sql := fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %q (
				id TEXT PRIMARY KEY,
				data JSONB NOT NULL
			)`, name,
		)
		if _, err := c.Exec(ctx, sql); err != nil {
			return fmt.Errorf("creating table %q: %w", name, err)
		}
	}
	return nil
}
