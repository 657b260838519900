package handler

import (
	"net/http"
	"strconv"
	"time"

	"Lee_Social/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EventHandler struct {
	svc *service.EventService
}

func NewEventHandler(db *gorm.DB) *EventHandler {
	return &EventHandler{svc: service.NewEventService(db)}
}

type createEventReq struct {
	CommunityID uint64    `json:"community_id" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
}

type updateEventReq struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartsAt    *time.Time `json:"starts_at"`
}

// Create 创建社区活动
func (h *EventHandler) Create(c *gin.Context) {
	var req createEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	ev, err := h.svc.Create(c.Request.Context(), userIDFromCtx(c), req.CommunityID, req.Title, req.Description, req.StartsAt)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": ev.ID})
}

// Update 修改活动
func (h *EventHandler) Update(c *gin.Context) {
	eventID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req updateEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.Update(c.Request.Context(), userIDFromCtx(c), eventID, req.Title, req.Description, req.StartsAt); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Delete 删除活动
func (h *EventHandler) Delete(c *gin.Context) {
	eventID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.svc.Delete(c.Request.Context(), userIDFromCtx(c), eventID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// ListByCommunity 社区活动列表
func (h *EventHandler) ListByCommunity(c *gin.Context) {
	communityID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))
	list, err := h.svc.ListByCommunity(c.Request.Context(), communityID, page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
