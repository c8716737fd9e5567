// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// Member models a registered library member.
// The ID is caller-supplied and must be unique within the members
// collection. NationalID is an optional natural key which may be used
// for lookups in addition to the primary ID.
// Only members with Active set to true are eligible to start a loan.
type Member struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Active     bool   `json:"active"`
	NationalID string `json:"nationalId,omitempty"`
}

// RecordID returns the identity of this member within its collection.
func (m Member) RecordID() string {
	return m.ID
}
