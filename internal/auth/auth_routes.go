package auth

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
	g := r.Group("/auth")
	{
		g.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		g.POST("/refresh", middleware.RateLimitByIP(0.2, 5), handler.RefreshToken)
		g.POST("/logout", handler.Logout)
		g.GET("/me", auth, middleware.RateLimitByUser(2, 5), handler.Me)
		g.POST("/register", auth, middleware.RBACAuthorize(rbacService, "user", "manage"), handler.Register)
	}
}
