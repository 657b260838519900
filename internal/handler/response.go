package handler

import (
	"errors"
	"net/http"

	"Lee_Social/internal/pkg"

	"github.com/gin-gonic/gin"
)

// fail 把引擎错误种类映射到 HTTP 状态码，错误码稳定可枚举
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, pkg.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, pkg.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, pkg.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, pkg.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, pkg.ErrConflict), errors.Is(err, pkg.ErrInvalidState):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"code": pkg.CodeOf(err), "msg": err.Error()})
}

func userIDFromCtx(c *gin.Context) uint64 {
	if v, ok := c.Get("user_id"); ok {
		if id, ok2 := v.(uint64); ok2 {
			return id
		}
	}
	return 0
}
