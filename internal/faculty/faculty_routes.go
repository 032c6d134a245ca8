package faculty

import (
	"uni-leave-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/faculty")
	group.Use(middleware.AuthMiddleware())
	{
		// the directory is readable by everyone signed in; substitute
		// pickers need the full list
		group.GET("", handler.GetAll)
		group.GET("/me/balance", handler.GetMyBalance)
		group.GET("/:id", handler.GetById)
	}
}
