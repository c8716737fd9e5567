package booksrs

import (
	"github.com/gin-gonic/gin"
	"github.com/openshelf/libweb/pkg/adapter/restful/gin/serdser"
	"github.com/openshelf/libweb/pkg/core/model"
)

type rawBookCreateReq struct {
	ID        string `json:"id" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Author    string `json:"author"`
	Year      int    `json:"year"`
	Genre     string `json:"genre"`
	Available *bool  `json:"available"`
}

type rawBookUpdateReq struct {
	Title     *string `json:"title"`
	Author    *string `json:"author"`
	Year      *int    `json:"year"`
	Genre     *string `json:"genre"`
	Available *bool   `json:"available"`
}

// DserCreateBookReq deserializes a book creation request. The book ID
// is caller-supplied and mandatory. A book which is created without an
// explicit availability starts out as available.
func (rs *resource) DserCreateBookReq(c *gin.Context) *model.Book {
	req := &rawBookCreateReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	book := &model.Book{
		ID:        req.ID,
		Title:     req.Title,
		Author:    req.Author,
		Year:      req.Year,
		Genre:     req.Genre,
		Available: true,
	}
	if req.Available != nil {
		book.Available = *req.Available
	}
	return book
}

// DserUpdateBookReq deserializes a partial book update into the
// fields map of the merge-update operation. Absent body fields stay
// untouched in the stored record; the record ID is immutable and not
// bindable here.
func (rs *resource) DserUpdateBookReq(c *gin.Context) map[string]any {
	req := &rawBookUpdateReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Author != nil {
		fields["author"] = *req.Author
	}
	if req.Year != nil {
		fields["year"] = *req.Year
	}
	if req.Genre != nil {
		fields["genre"] = *req.Genre
	}
	if req.Available != nil {
		fields["available"] = *req.Available
	}
	return fields
}
