// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages. Each records repository is one instantiation of the
// generic recordsrp.Repo for its entity kind; the p connections pool
// is passed to the use case instances, so they may acquire connections
// and transactions on demand and hand them to the repositories.
// Resource packages (named like booksrs) adapt the use case interfaces
// with the REST APIs and register themselves on the e gin engine.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/openshelf/libweb/pkg/adapter/db/postgres"
	"github.com/openshelf/libweb/pkg/adapter/db/postgres/recordsrp"
	"github.com/openshelf/libweb/pkg/adapter/restful/gin/booksrs"
	"github.com/openshelf/libweb/pkg/adapter/restful/gin/loansrs"
	"github.com/openshelf/libweb/pkg/adapter/restful/gin/membersrs"
	"github.com/openshelf/libweb/pkg/core/model"
	"github.com/openshelf/libweb/pkg/core/repo"
	"github.com/openshelf/libweb/pkg/core/usecase/entityuc"
	"github.com/openshelf/libweb/pkg/core/usecase/loansuc"
)

// Register instantiates the records repositories and use cases and
// registers all resources under the /api/libweb/v1 group.
func Register(e *gin.Engine, p repo.Pool) error {
	booksRepo := recordsrp.New[model.Book](postgres.BooksCollection)
	membersRepo := recordsrp.New[model.Member](postgres.MembersCollection)
	loansRepo := recordsrp.New[model.Loan](postgres.LoansCollection)

	booksUC := entityuc.New[model.Book](p, booksRepo)
	membersUC := entityuc.New[model.Member](p, membersRepo)
	loanReadsUC := entityuc.New[model.Loan](p, loansRepo)
	loansUC, err := loansuc.New(p, booksRepo, membersRepo, loansRepo)
	if err != nil {
		return fmt.Errorf("creating loans use case: %w", err)
	}

	r := e.Group("/api/libweb/v1")
	booksrs.Register(r, booksUC)
	membersrs.Register(r, membersUC)
	loansrs.Register(r, loansUC, loanReadsUC)
	return nil
}
