// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package recordsrp_test

import (
	"context"
	"testing"
	"time"

	"github.com/openshelf/libweb/internal/test/dbcontainer"
	"github.com/openshelf/libweb/pkg/adapter/db/postgres"
	"github.com/openshelf/libweb/pkg/adapter/db/postgres/recordsrp"
	"github.com/openshelf/libweb/pkg/core/cerr"
	"github.com/openshelf/libweb/pkg/core/model"
	"github.com/openshelf/libweb/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type RecordsRepoTestSuite struct {
	Ctx  context.Context
	Pool *postgres.Pool

	books *recordsrp.Repo[model.Book]
}

func TestRecordsRepoTestSuite(t *testing.T) {
	ctx := context.Background()
	_, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	err := pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return postgres.InitSchema(ctx, c)
	})
	if ok := assert.NoError(t, err, "initializing schema"); !ok {
		return
	}
	rrts := &RecordsRepoTestSuite{
		Ctx:   ctx,
		Pool:  pool,
		books: recordsrp.New[model.Book](postgres.BooksCollection),
	}
	t.Run("InsertAndGet", rrts.TestInsertAndGet)
	t.Run("Update", rrts.TestUpdate)
	t.Run("UpdateIf", rrts.TestUpdateIf)
	t.Run("Remove", rrts.TestRemove)
	t.Run("FindBy", rrts.TestFindBy)
	t.Run("ListLenientRead", rrts.TestListLenientRead)
	t.Run("TxRollback", rrts.TestTxRollback)
}

// conn runs f over a pooled connection, failing the test on a
// connection-level error.
func (rrts *RecordsRepoTestSuite) conn(
	t *testing.T, f func(ctx context.Context, c repo.Conn) error,
) {
	t.Helper()
	err := rrts.Pool.Conn(rrts.Ctx, f)
	require.NoError(t, err, "acquiring connection")
}

func (rrts *RecordsRepoTestSuite) TestInsertAndGet(t *testing.T) {
	rrts.conn(t, func(ctx context.Context, c repo.Conn) error {
		q := rrts.books.Conn(c)
		b := model.Book{
			ID: "ig1", Title: "Dune", Author: "Frank Herbert",
			Year: 1965, Genre: "sf", Available: true,
		}
		require.NoError(t, q.Insert(ctx, b))

		got, err := q.Get(ctx, "ig1")
		require.NoError(t, err)
		assert.Equal(t, b, got)

		err = q.Insert(ctx, b)
		var ce *cerr.Error
		require.ErrorAs(t, err, &ce, "duplicate ID must be reported")
		assert.Equal(t, 409, ce.HTTPStatusCode)

		err = q.Insert(ctx, model.Book{Title: "No ID"})
		require.ErrorAs(t, err, &ce, "empty ID must be rejected")
		assert.Equal(t, 400, ce.HTTPStatusCode)

		_, err = q.Get(ctx, "ig-nope")
		assert.True(t, cerr.IsNotFound(err))
		return nil
	})
}

func (rrts *RecordsRepoTestSuite) TestUpdate(t *testing.T) {
	rrts.conn(t, func(ctx context.Context, c repo.Conn) error {
		q := rrts.books.Conn(c)
		require.NoError(t, q.Insert(ctx, model.Book{
			ID: "up1", Title: "Solaris", Author: "Stanislaw Lem",
			Year: 1961, Genre: "sf", Available: true,
		}))

		ok, err := q.Update(ctx, "up1", map[string]any{
			"year":  1970,
			"genre": "philosophical sf",
		})
		require.NoError(t, err)
		assert.True(t, ok)
		got, err := q.Get(ctx, "up1")
		require.NoError(t, err)
		assert.Equal(t, 1970, got.Year)
		assert.Equal(t, "philosophical sf", got.Genre)
		assert.Equal(t, "Solaris", got.Title, "untouched fields survive")
		assert.True(t, got.Available, "untouched fields survive")

		ok, err = q.Update(ctx, "up1", map[string]any{})
		require.NoError(t, err)
		assert.True(t, ok, "empty update of an existing record")

		ok, err = q.Update(ctx, "up-nope", map[string]any{"year": 1})
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	})
}

func (rrts *RecordsRepoTestSuite) TestUpdateIf(t *testing.T) {
	rrts.conn(t, func(ctx context.Context, c repo.Conn) error {
		q := rrts.books.Conn(c)
		require.NoError(t, q.Insert(ctx, model.Book{
			ID: "ui1", Title: "Foundation", Available: true,
		}))

		ok, err := q.UpdateIf(
			ctx, "ui1",
			map[string]any{"available": false},
			"available", true,
		)
		require.NoError(t, err)
		assert.True(t, ok, "guard holds on the first flip")

		ok, err = q.UpdateIf(
			ctx, "ui1",
			map[string]any{"available": false},
			"available", true,
		)
		require.NoError(t, err)
		assert.False(t, ok, "guard fails on the second flip")

		ok, err = q.UpdateIf(
			ctx, "ui-nope",
			map[string]any{"available": false},
			"available", true,
		)
		require.NoError(t, err)
		assert.False(t, ok, "absent record never matches the guard")

		got, err := q.Get(ctx, "ui1")
		require.NoError(t, err)
		assert.False(t, got.Available)
		return nil
	})
}

func (rrts *RecordsRepoTestSuite) TestRemove(t *testing.T) {
	rrts.conn(t, func(ctx context.Context, c repo.Conn) error {
		q := rrts.books.Conn(c)
		require.NoError(t, q.Insert(ctx, model.Book{ID: "rm1", Title: "Ubik"}))

		ok, err := q.Remove(ctx, "rm1")
		require.NoError(t, err)
		assert.True(t, ok)
		_, err = q.Get(ctx, "rm1")
		assert.True(t, cerr.IsNotFound(err))

		ok, err = q.Remove(ctx, "rm1")
		require.NoError(t, err)
		assert.False(t, ok, "repeated removal reports false")
		return nil
	})
}

func (rrts *RecordsRepoTestSuite) TestFindBy(t *testing.T) {
	rrts.conn(t, func(ctx context.Context, c repo.Conn) error {
		q := rrts.books.Conn(c)
		require.NoError(t, q.Insert(ctx, model.Book{
			ID: "fb1", Title: "Hyperion", Genre: "space opera",
			Year: 1989, Available: true,
		}))
		require.NoError(t, q.Insert(ctx, model.Book{
			ID: "fb2", Title: "Ilium", Genre: "space opera",
			Year: 2003, Available: false,
		}))

		recs, err := q.FindBy(ctx, "genre", "space opera")
		require.NoError(t, err)
		assert.Len(t, recs, 2, "string-field match")

		recs, err = q.FindBy(ctx, "year", 1989)
		require.NoError(t, err)
		require.Len(t, recs, 1, "numeric-field match compares text forms")
		assert.Equal(t, "fb1", recs[0].ID)

		recs, err = q.FindBy(ctx, "genre", "noir")
		require.NoError(t, err)
		assert.Empty(t, recs, "no match yields an empty, non-nil slice")
		assert.NotNil(t, recs)
		return nil
	})
}

func (rrts *RecordsRepoTestSuite) TestListLenientRead(t *testing.T) {
	rrts.conn(t, func(ctx context.Context, c repo.Conn) error {
		q := rrts.books.Conn(c)
		require.NoError(t, q.Insert(ctx, model.Book{
			ID: "lr1", Title: "Neuromancer", Year: 1984,
		}))
		// a well-formed JSON document which does not decode as a book
		_, err := c.Exec(
			ctx,
			`INSERT INTO "books" (id, data) VALUES (?, ?::jsonb)`,
			"lr2", `{"id": "lr2", "year": "not-a-number"}`,
		)
		require.NoError(t, err, "planting an undecodable row")

		recs, err := q.List(ctx)
		require.NoError(t, err, "one bad row must not fail the listing")
		ids := make(map[string]bool, len(recs))
		for _, r := range recs {
			ids[r.ID] = true
		}
		assert.True(t, ids["lr1"], "healthy rows survive")
		assert.False(t, ids["lr2"], "the undecodable row is skipped")
		return nil
	})
}

func (rrts *RecordsRepoTestSuite) TestTxRollback(t *testing.T) {
	rrts.conn(t, func(ctx context.Context, c repo.Conn) error {
		q := rrts.books.Conn(c)
		require.NoError(t, q.Insert(ctx, model.Book{
			ID: "tx1", Title: "Roadside Picnic", Available: true,
		}))

		err := c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			tq := rrts.books.Tx(tx)
			ok, err := tq.Update(ctx, "tx1", map[string]any{
				"available": false,
			})
			require.NoError(t, err)
			require.True(t, ok)
			// duplicate insertion faults the handler, so the
			// transaction must roll the update back
			return tq.Insert(ctx, model.Book{ID: "tx1"})
		})
		require.Error(t, err)

		got, err := q.Get(ctx, "tx1")
		require.NoError(t, err)
		assert.True(t, got.Available, "the flip must be rolled back")
		return nil
	})
}
