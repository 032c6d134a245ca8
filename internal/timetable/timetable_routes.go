package timetable

import (
	"uni-leave-portal/internal/domain"
	"uni-leave-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/timetable")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("", handler.Get)
		group.GET("/faculty/:id", handler.GetForFaculty)
		group.POST("", middleware.RoleMiddleware(domain.RoleAdmin), handler.Create)
	}
}
