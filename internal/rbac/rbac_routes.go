package rbac

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, service Service) {
	group := r.Group("/rbac")
	group.Use(auth)
	{
		group.GET("/permissions", handler.MyPermissions)
		group.POST("/enforce", middleware.RBACAuthorize(service, "rbac", "read"), handler.Enforce)
	}
}
