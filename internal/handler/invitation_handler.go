package handler

import (
	"net/http"
	"strconv"

	"Lee_Social/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type InvitationHandler struct {
	svc *service.InvitationService
}

func NewInvitationHandler(db *gorm.DB) *InvitationHandler {
	return &InvitationHandler{svc: service.NewInvitationService(db)}
}

type inviteReq struct {
	CommunityID uint64 `json:"community_id" binding:"required"`
	Username    string `json:"username" binding:"required"`
}

// Invite 按用户名邀请入会
func (h *InvitationHandler) Invite(c *gin.Context) {
	var req inviteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	inv, err := h.svc.Invite(c.Request.Context(), userIDFromCtx(c), req.CommunityID, req.Username)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": inv.ID, "status": inv.Status})
}

// Respond 受邀人应答
func (h *InvitationHandler) Respond(c *gin.Context) {
	invitationID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req reviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	inv, err := h.svc.Respond(c.Request.Context(), invitationID, userIDFromCtx(c), req.Decision == "accept")
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": inv.ID, "status": inv.Status})
}

// Revoke 撤销邀请
func (h *InvitationHandler) Revoke(c *gin.Context) {
	invitationID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.svc.Revoke(c.Request.Context(), invitationID, userIDFromCtx(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// ListMine 我收到的待处理邀请
func (h *InvitationHandler) ListMine(c *gin.Context) {
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, next, err := h.svc.ListMine(c.Request.Context(), userIDFromCtx(c), cursor, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows, "next_cursor": next})
}
