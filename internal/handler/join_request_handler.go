package handler

import (
	"net/http"
	"strconv"

	"Lee_Social/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type JoinRequestHandler struct {
	svc *service.JoinRequestService
}

func NewJoinRequestHandler(db *gorm.DB) *JoinRequestHandler {
	return &JoinRequestHandler{svc: service.NewJoinRequestService(db)}
}

type joinRequestSubmitReq struct {
	CommunityID uint64 `json:"community_id" binding:"required"`
}

type reviewReq struct {
	Decision string `json:"decision" binding:"required,oneof=accept reject"`
}

// Submit 提交加入申请
func (h *JoinRequestHandler) Submit(c *gin.Context) {
	var req joinRequestSubmitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	jr, err := h.svc.Submit(c.Request.Context(), userIDFromCtx(c), req.CommunityID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": jr.ID, "status": jr.Status})
}

// Review 审批加入申请
func (h *JoinRequestHandler) Review(c *gin.Context) {
	requestID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req reviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	jr, err := h.svc.Review(c.Request.Context(), requestID, userIDFromCtx(c), req.Decision == "accept")
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": jr.ID, "status": jr.Status})
}

// Cancel 撤销申请
func (h *JoinRequestHandler) Cancel(c *gin.Context) {
	requestID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.svc.Cancel(c.Request.Context(), requestID, userIDFromCtx(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// ListPending 社区的待审申请
func (h *JoinRequestHandler) ListPending(c *gin.Context) {
	communityID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, next, err := h.svc.ListPending(c.Request.Context(), userIDFromCtx(c), communityID, cursor, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows, "next_cursor": next})
}
