package ledger

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
	employees := r.Group("/employees/:id")
	employees.Use(auth)
	{
		employees.GET("/balances", middleware.RBACAuthorize(rbacService, "ledger", "read"), handler.GetBalances)
		employees.GET("/ledger", middleware.RBACAuthorize(rbacService, "ledger", "read"), handler.GetEntries)
		employees.POST("/balances/adjust", middleware.RBACAuthorize(rbacService, "ledger", "adjust"), handler.Adjust)
	}

	me := r.Group("/me")
	me.Use(auth)
	{
		me.GET("/balances", handler.GetMyBalances)
		me.GET("/ledger", handler.GetMyEntries)
	}
}
