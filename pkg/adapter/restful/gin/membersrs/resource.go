// Copyright (c) 2025 The libweb authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package membersrs realizes the members resource, allowing the
// members CRUD REST APIs, plus the national-ID lookup, to be accepted
// and delegated to the members entity use case.
package membersrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openshelf/libweb/pkg/adapter/restful/gin/serdser"
	"github.com/openshelf/libweb/pkg/core/model"
	"github.com/openshelf/libweb/pkg/core/usecase/entityuc"
)

type resource struct {
	members *entityuc.UseCase[model.Member]
}

// Register instantiates a resource adapting the members use case
// instance with the relevant REST APIs including:
//  1. POST   /api/libweb/v1/members                  to register a member,
//  2. GET    /api/libweb/v1/members                  to list all members,
//  3. GET    /api/libweb/v1/members/national-id/:nid to look a member
//     up by the optional natural key,
//  4. GET    /api/libweb/v1/members/:id              to fetch one member,
//  5. PUT    /api/libweb/v1/members/:id              to update a member,
//  6. DELETE /api/libweb/v1/members/:id              to remove a member.
//
// The national-id route is registered before the :id route, matching
// the original lookup precedence of the two GET forms.
func Register(r *gin.RouterGroup, members *entityuc.UseCase[model.Member]) {
	rs := &resource{members: members}
	r.POST("members", rs.CreateMember)
	r.GET("members", rs.ListMembers)
	r.GET("members/national-id/:nid", rs.GetMemberByNationalID)
	r.GET("members/:id", rs.GetMember)
	r.PUT("members/:id", rs.UpdateMember)
	r.DELETE("members/:id", rs.DeleteMember)
}

func (rs *resource) CreateMember(c *gin.Context) {
	member := rs.DserCreateMemberReq(c)
	if member == nil {
		return
	}
	if err := rs.members.Create(c, *member); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (rs *resource) ListMembers(c *gin.Context) {
	members, err := rs.members.List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (rs *resource) GetMember(c *gin.Context) {
	member, err := rs.members.Get(c, c.Param("id"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// GetMemberByNationalID serves the natural-key lookup: the first
// member whose nationalId field equals the :nid path param, or a
// not-found response.
func (rs *resource) GetMemberByNationalID(c *gin.Context) {
	member, err := rs.members.First(c, "nationalId", c.Param("nid"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (rs *resource) UpdateMember(c *gin.Context) {
	fields := rs.DserUpdateMemberReq(c)
	if fields == nil {
		return
	}
	ok, err := rs.members.Update(c, c.Param("id"), fields)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "member not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "member updated"})
}

func (rs *resource) DeleteMember(c *gin.Context) {
	ok, err := rs.members.Delete(c, c.Param("id"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "member not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "member removed"})
}
