package availability

import (
	"uni-leave-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/availability")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("", handler.Resolve)
	}
}
