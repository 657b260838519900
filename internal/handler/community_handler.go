package handler

import (
	"net/http"
	"strconv"

	"Lee_Social/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommunityHandler struct {
	svc *service.CommunityService
}

func NewCommunityHandler(db *gorm.DB) *CommunityHandler {
	return &CommunityHandler{svc: service.NewCommunityService(db)}
}

type communityCreateReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
}

type communityUpdateReq struct {
	Description *string `json:"description"`
	Private     *bool   `json:"private"`
}

type memberRoleReq struct {
	Role int `json:"role"`
}

// Create 创建社区，创建者同事务成为 admin 成员
func (h *CommunityHandler) Create(c *gin.Context) {
	var req communityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	community, err := h.svc.Create(c.Request.Context(), userIDFromCtx(c), req.Name, req.Description, req.Private)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          community.ID,
		"name":        community.Name,
		"description": community.Description,
		"visibility":  community.Visibility,
	})
}

// Join 公开社区直接入会，私有社区返回加入申请
func (h *CommunityHandler) Join(c *gin.Context) {
	communityID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	result, err := h.svc.Join(c.Request.Context(), userIDFromCtx(c), communityID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Leave 退出社区
func (h *CommunityHandler) Leave(c *gin.Context) {
	communityID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.svc.Leave(c.Request.Context(), userIDFromCtx(c), communityID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// RemoveMember 管理员移除成员
func (h *CommunityHandler) RemoveMember(c *gin.Context) {
	communityID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	membershipID, _ := strconv.ParseUint(c.Param("member_id"), 10, 64)
	if err := h.svc.RemoveMember(c.Request.Context(), userIDFromCtx(c), communityID, membershipID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// UpdateMemberRole 管理员调整成员角色
func (h *CommunityHandler) UpdateMemberRole(c *gin.Context) {
	communityID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	membershipID, _ := strconv.ParseUint(c.Param("member_id"), 10, 64)
	var req memberRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.UpdateMemberRole(c.Request.Context(), userIDFromCtx(c), communityID, membershipID, req.Role); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// ListMembers 成员列表
func (h *CommunityHandler) ListMembers(c *gin.Context) {
	communityID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, next, err := h.svc.ListMembers(c.Request.Context(), communityID, cursor, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows, "next_cursor": next})
}

// Get 社区详情
func (h *CommunityHandler) Get(c *gin.Context) {
	communityID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	community, err := h.svc.Get(c.Request.Context(), communityID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, community)
}

// List 社区列表
func (h *CommunityHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))
	list, err := h.svc.List(c.Request.Context(), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// Update 社区设置，仅管理员
func (h *CommunityHandler) Update(c *gin.Context) {
	communityID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req communityUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.UpdateSettings(c.Request.Context(), userIDFromCtx(c), communityID, req.Description, req.Private); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Delete 删除社区，仅管理员
func (h *CommunityHandler) Delete(c *gin.Context) {
	communityID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.svc.Delete(c.Request.Context(), userIDFromCtx(c), communityID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
