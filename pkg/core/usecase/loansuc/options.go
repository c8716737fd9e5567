// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package loansuc

import (
	"errors"
	"time"
)

// Option is a functional option for the loans use case.
type Option func(uc *UseCase) error

// WithClock option configures a loans UseCase instance to take loan
// timestamps (BorrowedAt, ReturnedAt) from the given clock instead of
// time.Now. This option may be passed to the New() function; tests use
// it in order to fix the timestamps.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock must not be nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}

// WithIDGenerator option configures a loans UseCase instance to take
// generated loan IDs from the given generator instead of random UUIDs.
// Loan IDs are always generated here; callers may never supply one.
func WithIDGenerator(newID func() string) Option {
	return func(uc *UseCase) error {
		if newID == nil {
			return errors.New("id generator must not be nil")
		}
		if uc.newID != nil {
			return errors.New("id generator is already configured")
		}
		uc.newID = newID
		return nil
	}
}
