package routes

import (
	"github.com/gin-gonic/gin"

	"fire_tracker/internal/controllers"
	"fire_tracker/internal/middleware"
)

func AuthRoutes(r *gin.Engine, ac *controllers.AuthController, jwt *middleware.JWT, limiter *middleware.IPRateLimiter) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", limiter.Middleware(), ac.LoginUser)
		auth.GET("/me", jwt.RequireAuth(), ac.Me)
	}
}
