// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package loansuc contains the loans UseCase, the only component of
// this system which carries business rules. It decides whether a loan
// may be created and mutates the books and loans collections together
// on borrow and return.
//
// A loan knows exactly two states: open (created by Borrow, with
// ReturnedAt absent) and returned (entered by Return, terminal).
// Returning an already-returned loan is a no-op which reports false.
// All ineligibility and absence conditions are normal boolean results;
// errors are reserved for infrastructure failure.
package loansuc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/libweb/pkg/core/cerr"
	"github.com/openshelf/libweb/pkg/core/model"
	"github.com/openshelf/libweb/pkg/core/repo"
)

// UseCase represents the loans use case. It holds a database
// connection pool and the records repositories of the three entity
// kinds (to be guided with pool transactions).
type UseCase struct {
	pool    repo.Pool
	booksrp repo.Records[model.Book]
	membrp  repo.Records[model.Member]
	loansrp repo.Records[model.Loan]

	now   func() time.Time
	newID func() string
}

// New instantiates a loans use case.
// Required collaborators are passed individually, so the caller has to
// provision them and whenever they change, the caller will notice and
// fix them due to a compilation error. Optional parameters are passed
// as functional options.
func New(
	p repo.Pool,
	books repo.Records[model.Book],
	members repo.Records[model.Member],
	loans repo.Records[model.Loan],
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{
		pool:    p,
		booksrp: books,
		membrp:  members,
		loansrp: loans,
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.newID == nil {
		uc.newID = uuid.NewString
	}
	return uc, nil
}

// Borrow use case lends the bookID book to the memberID member.
// Eligibility requires that the book exists and is available and that
// the member exists and is active; an ineligible request reports false
// with no record mutated or created. An eligible request flips the
// book to unavailable, creates an open loan with a generated ID, and
// reports true.
//
// The whole operation runs in one transaction, so the book flip and
// the loan insertion are all-or-nothing. The flip itself is a
// conditional update guarded by the book's current availability, which
// closes the race of two concurrent borrows observing the same
// available book: the loser finds zero affected rows and reports
// false.
func (uc *UseCase) Borrow(ctx context.Context, bookID, memberID string) (ok bool, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			member, err := uc.membrp.Tx(tx).Get(ctx, memberID)
			if err != nil {
				if cerr.IsNotFound(err) {
					return nil
				}
				return err
			}
			if !member.Active {
				return nil
			}
			flipped, err := uc.booksrp.Tx(tx).UpdateIf(
				ctx, bookID,
				map[string]any{"available": false},
				"available", true,
			)
			if err != nil {
				return err
			}
			if !flipped {
				// absent book or lost borrow race
				return nil
			}
			loan := model.Loan{
				ID:         uc.newID(),
				BookID:     bookID,
				MemberID:   memberID,
				BorrowedAt: uc.now(),
			}
			if err := uc.loansrp.Tx(tx).Insert(ctx, loan); err != nil {
				return err
			}
			ok = true
			return nil
		})
	})
	if err != nil {
		ok = false
	}
	return
}

// Return use case closes the loanID loan: the referenced book becomes
// available again and the loan's ReturnedAt is set. An absent loan or
// one which was already returned reports false without mutating
// anything. Both updates run in one transaction.
//
// The book update is unconditional: if the book record was deleted
// meanwhile (deletion of entities with loan history is not guarded),
// the loan is still closed.
func (uc *UseCase) Return(ctx context.Context, loanID string) (ok bool, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			loan, err := uc.loansrp.Tx(tx).Get(ctx, loanID)
			if err != nil {
				if cerr.IsNotFound(err) {
					return nil
				}
				return err
			}
			if !loan.Open() {
				return nil
			}
			if _, err := uc.booksrp.Tx(tx).Update(
				ctx, loan.BookID,
				map[string]any{"available": true},
			); err != nil {
				return err
			}
			done, err := uc.loansrp.Tx(tx).Update(
				ctx, loanID,
				map[string]any{"returnedAt": uc.now()},
			)
			if err != nil {
				return err
			}
			if !done {
				return errors.New("open loan vanished mid-return")
			}
			ok = true
			return nil
		})
	})
	if err != nil {
		ok = false
	}
	return
}
