// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// Models carry JSON tags because the record store persists each of them
// as one opaque JSON document; adding tags does not complicate a struct
// definition, but prevents unnecessary struct duplication in the
// adapters layer.
package model

// Book models a book of the library catalog.
// The ID is caller-supplied (e.g., taken from an external catalog) and
// must be unique within the books collection.
// Available is false exactly while one open loan references this book;
// the loans use case owns that invariant, the model does not check it.
type Book struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Year      int    `json:"year"`
	Genre     string `json:"genre"`
	Available bool   `json:"available"`
}

// RecordID returns the identity of this book within its collection.
func (b Book) RecordID() string {
	return b.ID
}
