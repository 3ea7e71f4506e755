package routes

import (
	"github.com/gin-gonic/gin"

	"fire_tracker/internal/controllers"
	"fire_tracker/internal/middleware"
)

func AdminRoutes(r *gin.Engine, ac *controllers.AuthController, jwt *middleware.JWT) {
	admin := r.Group("/admin")
	admin.Use(jwt.RequireAuthWithRole(controllers.RoleAdmin))
	{
		admin.POST("/users", ac.SignupUser)
	}
}
