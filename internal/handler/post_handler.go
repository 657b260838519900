package handler

import (
	"net/http"
	"strconv"

	"Lee_Social/internal/repository/mysql"
	"Lee_Social/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{svc: service.NewPostService(db)}
}

type createPostReq struct {
	CommunityID uint64 `json:"community_id"`
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content"`
	Visibility  int8   `json:"visibility"`
}

// Create 发帖
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	post, err := h.svc.Create(c.Request.Context(), userIDFromCtx(c), req.CommunityID, req.Title, req.Content, req.Visibility)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": post.ID})
}

// Get 读单帖，不可见与不存在不作区分
func (h *PostHandler) Get(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	post, err := h.svc.Get(c.Request.Context(), userIDFromCtx(c), postID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// List 可见性过滤后的帖子列表
func (h *PostHandler) List(c *gin.Context) {
	communityID, _ := strconv.ParseUint(c.Query("community_id"), 10, 64)
	authorID, _ := strconv.ParseUint(c.Query("author_id"), 10, 64)
	cursor, _ := strconv.ParseUint(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))

	rows, next, err := h.svc.ListVisible(c.Request.Context(), userIDFromCtx(c), mysql.PostFilter{
		CommunityID: communityID,
		AuthorID:    authorID,
		Cursor:      cursor,
		Limit:       limit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": rows, "next_cursor": next})
}

// Delete 删帖：作者或社区版主及以上
func (h *PostHandler) Delete(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.svc.Delete(c.Request.Context(), userIDFromCtx(c), postID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}
