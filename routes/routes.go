package routes

import (
	"time"

	"unisched/handlers"
	"unisched/metrics"
	"unisched/middleware"
	"unisched/services/access"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.RegisterHandler)
		api.POST("/login", hb.User.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.Tokens, hb.Revocations))
		api.GET("/user", middleware.RequireOperation(access.OpViewProfile), hb.User.MeHandler)
		api.POST("/logout", middleware.RequireOperation(access.OpLogout), hb.User.LogoutHandler)
	}
}

// RegisterCourseRoutes registers course catalogue endpoints.
func RegisterCourseRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/courses")
	api.Use(middleware.JWTAuthMiddleware(hb.Tokens, hb.Revocations))
	{
		api.POST("", middleware.RequireOperation(access.OpCourseCreate), hb.Course.CreateCourseHandler)
		api.GET("", middleware.RequireOperation(access.OpCourseList), hb.Course.ListCoursesHandler)
		api.PUT("/:id", middleware.RequireOperation(access.OpCourseUpdate), hb.Course.UpdateCourseHandler)
		api.DELETE("/:id", middleware.RequireOperation(access.OpCourseDelete), hb.Course.DeleteCourseHandler)
	}
}

// RegisterTimetableRoutes registers class schedule endpoints.
func RegisterTimetableRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/timetable")
	api.Use(middleware.JWTAuthMiddleware(hb.Tokens, hb.Revocations))
	{
		api.POST("", middleware.RequireOperation(access.OpTimetableCreate), hb.Timetable.CreateTimetableHandler)
		api.GET("", middleware.RequireOperation(access.OpTimetableList), hb.Timetable.ListTimetableHandler)
		api.GET("/export", middleware.RequireOperation(access.OpTimetableExport), hb.Timetable.ExportTimetableHandler)
		api.PUT("/:id", middleware.RequireOperation(access.OpTimetableUpdate), hb.Timetable.UpdateTimetableHandler)
		api.DELETE("/:id", middleware.RequireOperation(access.OpTimetableDelete), hb.Timetable.DeleteTimetableHandler)
	}
}

// RegisterRoomRoutes sets up the endpoints for rooms and the booking engine.
func RegisterRoomRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/room")
	api.Use(middleware.JWTAuthMiddleware(hb.Tokens, hb.Revocations))
	{
		api.POST("", middleware.RequireOperation(access.OpRoomCreate), hb.Room.CreateRoomHandler)
		api.GET("", middleware.RequireOperation(access.OpRoomView), hb.Room.ListRoomsHandler)
		api.GET("/:roomId", middleware.RequireOperation(access.OpRoomView), hb.Room.GetRoomHandler)
		api.POST("/book/:roomId", middleware.RequireOperation(access.OpBookingCreate), hb.Room.BookRoomHandler)
		api.PUT("/bookings/:roomId/:bookingId", middleware.RequireOperation(access.OpBookingUpdate), hb.Room.UpdateBookingHandler)
		api.DELETE("/bookings/:roomId/:bookingId", middleware.RequireOperation(access.OpBookingDelete), hb.Room.DeleteBookingHandler)
	}
}

// RegisterEnrollmentRoutes registers enrollment endpoints.
func RegisterEnrollmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/enrollment")
	api.Use(middleware.JWTAuthMiddleware(hb.Tokens, hb.Revocations))
	{
		api.POST("", middleware.RequireOperation(access.OpEnrollSelf), hb.Enrollment.EnrollHandler)
		api.GET("/me", middleware.RequireOperation(access.OpEnrollmentMine), hb.Enrollment.MyEnrollmentsHandler)
		api.GET("", middleware.RequireOperation(access.OpEnrollmentList), hb.Enrollment.ListEnrollmentsHandler)
		api.PUT("/:id", middleware.RequireOperation(access.OpEnrollmentUpdate), hb.Enrollment.UpdateEnrollmentHandler)
		api.DELETE("/:id", middleware.RequireOperation(access.OpEnrollmentDelete), hb.Enrollment.DeleteEnrollmentHandler)
	}
}

// RegisterNotificationRoutes registers notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	api.Use(middleware.JWTAuthMiddleware(hb.Tokens, hb.Revocations))
	{
		api.POST("", middleware.RequireOperation(access.OpNotificationCreate), hb.Notification.SendNotificationHandler)
		api.GET("/me", middleware.RequireOperation(access.OpNotificationMine), hb.Notification.MyNotificationsHandler)
		api.GET("", middleware.RequireOperation(access.OpNotificationList), hb.Notification.ListNotificationsHandler)
		api.PUT("/:id", middleware.RequireOperation(access.OpNotificationUpdate), hb.Notification.UpdateNotificationHandler)
		api.DELETE("/:id", middleware.RequireOperation(access.OpNotificationDelete), hb.Notification.DeleteNotificationHandler)
	}
}

// RegisterHealthRoutes registers the health check and the Prometheus scrape endpoint.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
	r.GET("/metrics", metrics.Handler())
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, limiter *middleware.RateLimiter) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.LegacyTokenHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(metrics.Middleware())
	if limiter != nil {
		r.Use(limiter.Middleware())
	}

	RegisterHealthRoutes(r)
	RegisterUserRoutes(r, hb)
	RegisterCourseRoutes(r, hb)
	RegisterTimetableRoutes(r, hb)
	RegisterRoomRoutes(r, hb)
	RegisterEnrollmentRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
}
