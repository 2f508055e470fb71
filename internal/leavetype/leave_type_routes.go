package leavetype

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
) {
	types := r.Group("/leave-types")
	types.Use(auth)
	{
		types.GET("", middleware.RBACAuthorize(rbacService, "leave_type", "read"), handler.GetAll)
		types.PUT("/:key", middleware.RBACAuthorize(rbacService, "leave_type", "manage"), handler.Upsert)
		types.DELETE("/:key", middleware.RBACAuthorize(rbacService, "leave_type", "manage"), handler.Delete)
	}
}
