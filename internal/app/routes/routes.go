package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appAuth "github.com/yigit/studentdesk/internal/app/auth"
	"github.com/yigit/studentdesk/internal/app/controllers"
	"github.com/yigit/studentdesk/internal/app/models/dto"
	"github.com/yigit/studentdesk/internal/middleware"
	"github.com/yigit/studentdesk/internal/pkg/websocket"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Auth      *controllers.AuthController
	Students  *controllers.StudentController
	Profile   *controllers.ProfileController
	Dashboard *controllers.DashboardController
	Users     *controllers.UserController
	Events    *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", h.Auth.Me)
		authenticated.GET("/navigation", h.Auth.Navigation)

		// Dashboard decides per role what it shows
		authenticated.GET("/dashboard", h.Dashboard.GetDashboard)

		// Single record reads are checked against ownership by the service
		authenticated.GET("/students/:id", h.Students.GetStudent)

		// Directory routes - staff only
		students := authenticated.Group("/students")
		students.Use(authMiddleware.SectionRequired(appAuth.SectionDirectory))
		{
			students.GET("", h.Students.GetStudents)
			students.GET("/search", h.Students.SearchStudents)
			students.POST("", h.Students.CreateStudent)
			students.PUT("/:id", h.Students.UpdateStudent)

			// Two-step delete: select, then confirm or cancel
			students.POST("/:id/delete-request", h.Students.RequestDelete)
			students.POST("/delete-request/confirm", h.Students.ConfirmDelete)
			students.DELETE("/delete-request", h.Students.CancelDelete)
		}

		staff := authenticated.Group("")
		staff.Use(authMiddleware.SectionRequired(appAuth.SectionDirectory))
		{
			staff.GET("/users", h.Users.ListUsers)
			staff.GET("/events", h.Events.HandleConnection)
		}

		// Profile routes - students only
		profile := authenticated.Group("/profile")
		profile.Use(authMiddleware.SectionRequired(appAuth.SectionProfile))
		{
			profile.GET("", h.Profile.GetProfile)
			profile.PUT("", h.Profile.UpdateProfile)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})
}
