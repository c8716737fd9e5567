// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package booksrs realizes the books resource, allowing the books
// CRUD REST APIs to be accepted and delegated to the books entity
// use case. Deleting a book with loan history is not guarded; the
// loans collection keeps dangling references in that case.
package booksrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openshelf/libweb/pkg/adapter/restful/gin/serdser"
	"github.com/openshelf/libweb/pkg/core/model"
	"github.com/openshelf/libweb/pkg/core/usecase/entityuc"
)

type resource struct {
	books *entityuc.UseCase[model.Book]
}

// Register instantiates a resource adapting the books use case
// instance with the relevant REST APIs including:
//  1. POST   /api/libweb/v1/books      to create a book,
//  2. GET    /api/libweb/v1/books      to list all books,
//  3. GET    /api/libweb/v1/books/:id  to fetch one book,
//  4. PUT    /api/libweb/v1/books/:id  to update fields of a book,
//  5. DELETE /api/libweb/v1/books/:id  to remove a book.
func Register(r *gin.RouterGroup, books *entityuc.UseCase[model.Book]) {
	rs := &resource{books: books}
	r.POST("books", rs.CreateBook)
	r.GET("books", rs.ListBooks)
	r.GET("books/:id", rs.GetBook)
	r.PUT("books/:id", rs.UpdateBook)
	r.DELETE("books/:id", rs.DeleteBook)
}

func (rs *resource) CreateBook(c *gin.Context) {
	book := rs.DserCreateBookReq(c)
	if book == nil {
		return
	}
	if err := rs.books.Create(c, *book); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (rs *resource) ListBooks(c *gin.Context) {
	books, err := rs.books.List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (rs *resource) GetBook(c *gin.Context) {
	book, err := rs.books.Get(c, c.Param("id"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (rs *resource) UpdateBook(c *gin.Context) {
	fields := rs.DserUpdateBookReq(c)
	if fields == nil {
		return
	}
	ok, err := rs.books.Update(c, c.Param("id"), fields)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "book not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "book updated"})
}

func (rs *resource) DeleteBook(c *gin.Context) {
	ok, err := rs.books.Delete(c, c.Param("id"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "book not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "book removed"})
}
