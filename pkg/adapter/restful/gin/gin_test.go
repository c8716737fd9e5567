// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/openshelf/libweb/internal/test/dbcontainer"
	"github.com/openshelf/libweb/pkg/adapter/db/postgres"
	"github.com/openshelf/libweb/pkg/adapter/restful/gin"
	"github.com/openshelf/libweb/pkg/adapter/restful/gin/routes"
	"github.com/openshelf/libweb/pkg/core/model"
	"github.com/openshelf/libweb/pkg/core/repo"
	"github.com/stretchr/testify/suite"
)

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pool *postgres.Pool
	Gin  *gin.Engine
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	_, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:  ctx,
		Pool: pool,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return postgres.InitSchema(ctx, c)
		},
	)
	igts.Require().NoError(err, "failed to create schema contents")

	igts.Gin = gin.New(gin.Logger(), gin.Recovery())
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	err = routes.Register(igts.Gin, igts.Pool)
	igts.Require().NoError(err, "failed to register Gin routes")
}

func jsonBody(v any) io.Reader {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bytes.NewReader(b)
}

// sendJSON sends one JSON request and decodes the JSON response into
// res (unless res is nil), returning the response status code.
func (igts *IntegrationGinTestSuite) sendJSON(
	method, path string, body io.Reader, res any,
) int {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(
		method, "/api/libweb/v1/"+path, body,
	)
	igts.Require().NoError(err, "cannot create %s request", method)
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}
	igts.Gin.ServeHTTP(w, req)
	if res != nil {
		b := w.Body.Bytes()
		igts.NoError(json.Unmarshal(b, res), "body is not json")
	}
	return w.Code
}

func (igts *IntegrationGinTestSuite) createBook(b map[string]any) {
	code := igts.sendJSON(http.MethodPost, "books", jsonBody(b), nil)
	igts.Require().Equal(201, code, "creating book %v", b["id"])
}

func (igts *IntegrationGinTestSuite) createMember(m map[string]any) {
	code := igts.sendJSON(http.MethodPost, "members", jsonBody(m), nil)
	igts.Require().Equal(201, code, "creating member %v", m["id"])
}

func (igts *IntegrationGinTestSuite) getBook(id string) model.Book {
	book := model.Book{}
	code := igts.sendJSON(http.MethodGet, "books/"+id, nil, &book)
	igts.Require().Equal(200, code, "fetching book %q", id)
	return book
}

func (igts *IntegrationGinTestSuite) TestBooksCRUD() {
	book := model.Book{}
	code := igts.sendJSON(http.MethodPost, "books", jsonBody(map[string]any{
		"id":     "crud-b1",
		"title":  "Dune",
		"author": "Frank Herbert",
		"year":   1965,
		"genre":  "sf",
	}), &book)
	igts.Equal(201, code)
	igts.Equal("crud-b1", book.ID)
	igts.True(book.Available, "availability defaults to true")

	igts.Equal(200, igts.sendJSON(http.MethodGet, "books/crud-b1", nil, &book))
	igts.Equal("Dune", book.Title)

	code = igts.sendJSON(http.MethodPost, "books", jsonBody(map[string]any{
		"id":    "crud-b1",
		"title": "Dune again",
	}), nil)
	igts.Equal(409, code, "duplicate book ID")

	fieldErrs := map[string][]string{}
	code = igts.sendJSON(http.MethodPost, "books", jsonBody(map[string]any{
		"id": "crud-b2",
	}), &fieldErrs)
	igts.Equal(400, code, "title is required")
	igts.Contains(fieldErrs, "Title")

	res := &struct{ Detail string }{}
	code = igts.sendJSON(http.MethodPut, "books/crud-b1", jsonBody(map[string]any{
		"year": 1966,
	}), res)
	igts.Equal(200, code)
	igts.Equal("book updated", res.Detail)
	book = igts.getBook("crud-b1")
	igts.Equal(1966, book.Year)
	igts.Equal("Frank Herbert", book.Author, "untouched fields survive")

	code = igts.sendJSON(http.MethodPut, "books/crud-nope", jsonBody(map[string]any{
		"year": 1,
	}), res)
	igts.Equal(404, code)
	igts.Equal("book not found", res.Detail)

	code = igts.sendJSON(http.MethodDelete, "books/crud-b1", nil, res)
	igts.Equal(200, code)
	igts.Equal("book removed", res.Detail)
	igts.Equal(404, igts.sendJSON(http.MethodGet, "books/crud-b1", nil, res))
	igts.Equal(404, igts.sendJSON(http.MethodDelete, "books/crud-b1", nil, res))
}

func (igts *IntegrationGinTestSuite) TestMembers() {
	igts.createMember(map[string]any{
		"id":         "mem-m1",
		"name":       "Ada Lovelace",
		"email":      "ada@example.org",
		"nationalId": "NID-1",
	})

	member := model.Member{}
	code := igts.sendJSON(
		http.MethodGet, "members/national-id/NID-1", nil, &member,
	)
	igts.Equal(200, code)
	igts.Equal("mem-m1", member.ID)
	igts.True(member.Active, "activity defaults to true")

	code = igts.sendJSON(
		http.MethodGet, "members/national-id/NID-nope", nil, nil,
	)
	igts.Equal(404, code)

	fieldErrs := map[string][]string{}
	code = igts.sendJSON(http.MethodPost, "members", jsonBody(map[string]any{
		"id":    "mem-m2",
		"name":  "Bob",
		"email": "not-an-email",
	}), &fieldErrs)
	igts.Equal(400, code, "malformed email")
	igts.Contains(fieldErrs, "Email")
}

func (igts *IntegrationGinTestSuite) TestLoanLifecycle() {
	igts.createBook(map[string]any{
		"id":    "loan-b1",
		"title": "Hyperion",
	})
	igts.createMember(map[string]any{
		"id":   "loan-m1",
		"name": "Ada",
	})
	igts.createMember(map[string]any{
		"id":     "loan-m2",
		"name":   "Bob",
		"active": false,
	})

	res := &struct{ Detail string }{}
	code := igts.sendJSON(http.MethodPost, "loans", jsonBody(map[string]any{
		"bookId":   "loan-b1",
		"memberId": "loan-m2",
	}), res)
	igts.Equal(400, code, "inactive member may not borrow")
	igts.True(igts.getBook("loan-b1").Available,
		"rejected borrow must not flip the book")

	code = igts.sendJSON(http.MethodPost, "loans", jsonBody(map[string]any{
		"bookId":   "loan-b1",
		"memberId": "loan-m1",
	}), res)
	igts.Require().Equal(201, code, "eligible borrow")
	igts.Equal("loan created", res.Detail)
	igts.False(igts.getBook("loan-b1").Available)

	code = igts.sendJSON(http.MethodPost, "loans", jsonBody(map[string]any{
		"bookId":   "loan-b1",
		"memberId": "loan-m1",
	}), res)
	igts.Equal(400, code, "the single copy is already lent out")

	loans := []model.Loan{}
	igts.Equal(200, igts.sendJSON(http.MethodGet, "loans", nil, &loans))
	var loan *model.Loan
	for i := range loans {
		if loans[i].BookID == "loan-b1" {
			loan = &loans[i]
		}
	}
	igts.Require().NotNil(loan, "the open loan must be listed")
	igts.NotEmpty(loan.ID, "loan IDs are generated")
	igts.Equal("loan-m1", loan.MemberID)
	igts.True(loan.Open())

	code = igts.sendJSON(
		http.MethodPut, "loans/"+loan.ID+"/return", nil, res,
	)
	igts.Equal(200, code)
	igts.Equal("book returned", res.Detail)
	igts.True(igts.getBook("loan-b1").Available, "return frees the book")

	returned := model.Loan{}
	code = igts.sendJSON(http.MethodGet, "loans/"+loan.ID, nil, &returned)
	igts.Equal(200, code)
	igts.False(returned.Open(), "ReturnedAt must be recorded")

	code = igts.sendJSON(
		http.MethodPut, "loans/"+loan.ID+"/return", nil, res,
	)
	igts.Equal(400, code, "a returned loan is terminal")
	igts.Equal("loan cannot be returned", res.Detail)

	code = igts.sendJSON(
		http.MethodPut, "loans/nope/return", nil, res,
	)
	igts.Equal(400, code, "an absent loan cannot be returned")

	fieldErrs := map[string][]string{}
	code = igts.sendJSON(http.MethodPost, "loans", jsonBody(map[string]any{
		"memberId": "loan-m1",
	}), &fieldErrs)
	igts.Equal(400, code, "bookId is required")
	igts.Contains(fieldErrs, "BookID")
}
