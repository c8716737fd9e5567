// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// Record constrains the model types which may be kept in a records
// collection. Each record exposes its unique string identity; the
// store never interprets any other field, except the single field
// named in a FindBy or UpdateIf call.
type Record interface {
	RecordID() string
}

// RecordsQueryer is the capability set of one records collection.
// It is implemented once per storage backend and instantiated per
// entity kind by composition; entity-specific business rules never
// live at this layer.
//
// Absence is not a fault: Get returns a cerr.NotFound error which
// callers may treat as a normal outcome, Update and Remove report a
// false boolean, and FindBy returns an empty slice. Genuine faults
// (store unreachable, undecodable payload on a point lookup) are
// returned as plain errors.
type RecordsQueryer[M Record] interface {
	// Insert persists rec keyed by its RecordID. It fails with
	// cerr.BadRequest if the ID is empty and with cerr.Conflict if
	// the ID already exists in this collection.
	Insert(ctx context.Context, rec M) error

	// Get returns the record stored under id, or cerr.NotFound.
	Get(ctx context.Context, id string) (M, error)

	// FindBy returns all records whose named top-level field has the
	// same serialized value as value. Results come in store-native
	// order which is not guaranteed stable across calls.
	FindBy(ctx context.Context, field string, value any) ([]M, error)

	// List returns every record of the collection. A row that fails
	// to deserialize is logged and skipped instead of aborting the
	// whole listing; see the lenient-read note of the adapter.
	List(ctx context.Context) ([]M, error)

	// Update shallow-merges fields onto the stored record: named
	// fields override, omitted fields are retained. It reports false
	// without an error if id is absent.
	Update(ctx context.Context, id string, fields map[string]any) (bool, error)

	// UpdateIf behaves like Update, but applies the merge only while
	// the guard field still holds the given serialized value. It is
	// the conditional-update primitive which closes check-then-act
	// races such as two concurrent borrows of one book.
	UpdateIf(ctx context.Context, id string, fields map[string]any, guardField string, guardValue any) (bool, error)

	// Remove deletes the row if present and reports whether a row
	// was removed.
	Remove(ctx context.Context, id string) (bool, error)
}

type RecordsConnQueryer[M Record] interface {
	RecordsQueryer[M]
}

type RecordsTxQueryer[M Record] interface {
	RecordsQueryer[M]
}

// Records binds a records collection to a live connection or
// transaction, following the same adaptation scheme as the rest of
// the repository layer.
type Records[M Record] interface {
	Conn(Conn) RecordsConnQueryer[M]
	Tx(Tx) RecordsTxQueryer[M]
}
