// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "time"

// Loan models one lending of one book to one member.
// Despite books and members, the ID is never caller-supplied; it is
// generated when the loans use case creates the record. BookID,
// MemberID, and BorrowedAt are immutable after creation. ReturnedAt is
// nil while the loan is open and set exactly once when the book comes
// back; there is no other state transition.
// The store enforces no referential integrity, so BookID and MemberID
// are checked against their collections at borrow time only.
type Loan struct {
	ID         string     `json:"id"`
	BookID     string     `json:"bookId"`
	MemberID   string     `json:"memberId"`
	BorrowedAt time.Time  `json:"borrowedAt"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
}

// RecordID returns the identity of this loan within its collection.
func (l Loan) RecordID() string {
	return l.ID
}

// Open reports whether the loaned book is still out, that is, whether
// ReturnedAt is absent.
func (l Loan) Open() bool {
	return l.ReturnedAt == nil
}
