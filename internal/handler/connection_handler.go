package handler

import (
	"net/http"
	"strconv"

	"Lee_Social/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ConnectionHandler struct {
	svc *service.ConnectionService
}

func NewConnectionHandler(db *gorm.DB) *ConnectionHandler {
	return &ConnectionHandler{svc: service.NewConnectionService(db)}
}

type connectionRequestReq struct {
	TargetID uint64 `json:"target_id" binding:"required"`
}

type connectionRespondReq struct {
	Decision string `json:"decision" binding:"required,oneof=accept reject"`
}

// Request 发起连接请求
func (h *ConnectionHandler) Request(c *gin.Context) {
	var req connectionRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	conn, err := h.svc.Request(c.Request.Context(), userIDFromCtx(c), req.TargetID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": conn.ID, "status": conn.Status})
}

// Respond 接受/拒绝连接请求
func (h *ConnectionHandler) Respond(c *gin.Context) {
	connectionID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	var req connectionRespondReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	conn, err := h.svc.Respond(c.Request.Context(), connectionID, userIDFromCtx(c), req.Decision == "accept")
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": conn.ID, "status": conn.Status})
}

// Remove 解除连接
func (h *ConnectionHandler) Remove(c *gin.Context) {
	otherID, _ := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err := h.svc.Remove(c.Request.Context(), userIDFromCtx(c), otherID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Status 相对查看者的连接状态
func (h *ConnectionHandler) Status(c *gin.Context) {
	otherID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	status, err := h.svc.StatusFor(c.Request.Context(), userIDFromCtx(c), otherID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// List 我的连接列表
func (h *ConnectionHandler) List(c *gin.Context) {
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, next, err := h.svc.ListConnections(c.Request.Context(), userIDFromCtx(c), cursor, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows, "next_cursor": next})
}

// ListPending 待我处理的连接请求
func (h *ConnectionHandler) ListPending(c *gin.Context) {
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, next, err := h.svc.ListPendingReceived(c.Request.Context(), userIDFromCtx(c), cursor, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows, "next_cursor": next})
}
