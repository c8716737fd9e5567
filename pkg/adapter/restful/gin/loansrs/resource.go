// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package loansrs realizes the loans resource. Loan creation and
// closing go through the loans use case which owns the lifecycle
// rules; reads go through the loans entity use case. There is no
// delete route and no caller-supplied loan ID: loans are created by
// borrowing only and kept forever.
package loansrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openshelf/libweb/pkg/adapter/restful/gin/serdser"
	"github.com/openshelf/libweb/pkg/core/model"
	"github.com/openshelf/libweb/pkg/core/usecase/entityuc"
	"github.com/openshelf/libweb/pkg/core/usecase/loansuc"
)

type resource struct {
	loans     *loansuc.UseCase
	loanReads *entityuc.UseCase[model.Loan]
}

// Register instantiates a resource adapting the loans use cases with
// the relevant REST APIs including:
//  1. POST /api/libweb/v1/loans            to borrow a book,
//  2. GET  /api/libweb/v1/loans            to list all loans,
//  3. GET  /api/libweb/v1/loans/:id        to fetch one loan,
//  4. PUT  /api/libweb/v1/loans/:id/return to return a borrowed book.
func Register(
	r *gin.RouterGroup,
	loans *loansuc.UseCase,
	loanReads *entityuc.UseCase[model.Loan],
) {
	rs := &resource{loans: loans, loanReads: loanReads}
	r.POST("loans", rs.CreateLoan)
	r.GET("loans", rs.ListLoans)
	r.GET("loans/:id", rs.GetLoan)
	r.PUT("loans/:id/return", rs.ReturnLoan)
}

type rawLoanCreateReq struct {
	BookID   string `json:"bookId" binding:"required"`
	MemberID string `json:"memberId" binding:"required"`
}

// CreateLoan borrows a book for a member. An ineligible request (an
// absent or unavailable book, an absent or inactive member) is a
// normal rejection reported as a Bad Request, not a fault.
func (rs *resource) CreateLoan(c *gin.Context) {
	req := &rawLoanCreateReq{}
	if ok := serdser.Bind(c, req); !ok {
		return
	}
	ok, err := rs.loans.Borrow(c, req.BookID, req.MemberID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": "book or member is not eligible for borrowing",
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"detail": "loan created"})
}

func (rs *resource) ListLoans(c *gin.Context) {
	loans, err := rs.loanReads.List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, loans)
}

func (rs *resource) GetLoan(c *gin.Context) {
	loan, err := rs.loanReads.Get(c, c.Param("id"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

// ReturnLoan closes an open loan. Returning an absent or already
// returned loan is a normal rejection reported as a Bad Request.
func (rs *resource) ReturnLoan(c *gin.Context) {
	ok, err := rs.loans.Return(c, c.Param("id"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": "loan cannot be returned",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "book returned"})
}
