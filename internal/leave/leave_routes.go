package leave

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rbacService middleware.RBACService,
	redisClient *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(auth)
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetById)
		leaves.POST("",
			middleware.RBACAuthorize(rbacService, "leave", "manage"),
			middleware.Idempotency(redisClient),
			handler.Create,
		)
		leaves.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.Update)
		leaves.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.ChangeStatus)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "manage"), handler.Delete)
	}

	me := r.Group("/me/leaves")
	me.Use(auth)
	{
		me.GET("", handler.ListMine)
		me.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "leave", "submit"),
			middleware.Idempotency(redisClient),
			handler.Submit,
		)
		me.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "leave", "submit"), handler.Cancel)
	}
}
