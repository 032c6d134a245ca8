package leave

import (
	"uni-leave-portal/internal/domain"
	"uni-leave-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, idempotency gin.HandlerFunc) {
	group := r.Group("/leaves")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("", idempotency, handler.Submit)
		group.GET("", handler.GetAll)
		group.GET("/:id", handler.GetById)
		group.POST("/:id/substitutions/respond", handler.Respond)
		group.POST("/:id/substitutions/force-assign",
			middleware.RoleMiddleware(domain.RoleHOD, domain.RoleAdmin), handler.ForceAssign)
		group.PATCH("/:id/status",
			middleware.RoleMiddleware(domain.RoleHOD, domain.RoleAdmin), handler.SetStatus)
	}
}
