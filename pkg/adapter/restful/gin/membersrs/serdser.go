package membersrs

import (
	"github.com/gin-gonic/gin"
	"github.com/openshelf/libweb/pkg/adapter/restful/gin/serdser"
	"github.com/openshelf/libweb/pkg/core/model"
)

type rawMemberCreateReq struct {
	ID         string `json:"id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone"`
	Active     *bool  `json:"active"`
	NationalID string `json:"nationalId"`
}

type rawMemberUpdateReq struct {
	Name       *string `json:"name"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Phone      *string `json:"phone"`
	Active     *bool   `json:"active"`
	NationalID *string `json:"nationalId"`
}

// DserCreateMemberReq deserializes a member registration request. The
// member ID is caller-supplied and mandatory; a member registered
// without an explicit activity flag starts out active.
func (rs *resource) DserCreateMemberReq(c *gin.Context) *model.Member {
	req := &rawMemberCreateReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	member := &model.Member{
		ID:         req.ID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Active:     true,
		NationalID: req.NationalID,
	}
	if req.Active != nil {
		member.Active = *req.Active
	}
	return member
}

// DserUpdateMemberReq deserializes a partial member update into the
// fields map of the merge-update operation.
func (rs *resource) DserUpdateMemberReq(c *gin.Context) map[string]any {
	req := &rawMemberUpdateReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}
	if req.NationalID != nil {
		fields["nationalId"] = *req.NationalID
	}
	return fields
}
