// File: unisched/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"unisched/config"
	"unisched/cron"
	"unisched/database"
	courseRepo "unisched/database/repository/course"
	enrollmentRepo "unisched/database/repository/enrollment"
	notificationRepo "unisched/database/repository/notification"
	roomRepo "unisched/database/repository/room"
	timetableRepo "unisched/database/repository/timetable"
	userRepoPkg "unisched/database/repository/user"
	"unisched/handlers"
	"unisched/metrics"
	"unisched/middleware"
	"unisched/routes"
	"unisched/services/booking"
	"unisched/services/course"
	"unisched/services/enrollment"
	"unisched/services/notification"
	"unisched/services/room"
	"unisched/services/timetable"
	"unisched/services/user"
	"unisched/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	if err := utils.RegisterValidators(); err != nil {
		logger.Fatal("main: failed to register validators", zap.Error(err))
	}
	metrics.Register()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	if err := database.InitDB(rootCtx); err != nil {
		logger.Fatal("main: database unavailable", zap.Error(err))
	}
	utils.InitRedis()
	db := database.DB()

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo(rootCtx, db)
	courses := courseRepo.NewMongoCourseRepo(rootCtx, db)
	enrollments := enrollmentRepo.NewMongoEnrollmentRepo(rootCtx, db)
	timetables := timetableRepo.NewMongoTimetableRepo(rootCtx, db)
	rooms := roomRepo.NewMongoRoomRepo(rootCtx, db)
	notifications := notificationRepo.NewMongoNotificationRepo(rootCtx, db)

	// background notification delivery.
	queue := asynq.NewClient(cron.QueueRedisOpt())
	defer queue.Close()
	dispatcher := notification.NewDispatcher(queue, logger.Named("dispatcher"))

	// services.
	tokens := utils.NewTokenManager(config.AppConfig.JWTSecret, config.TokenTTL())
	tokenStore := user.NewRedisTokenStore(utils.GetAuthCacheClient())
	userService := user.NewDefaultUserService(userRepo, tokens, tokenStore, logger.Named("user"))
	courseService := course.NewDefaultCourseService(courses, userRepo, logger.Named("course"))
	enrollmentService := enrollment.NewDefaultEnrollmentService(enrollments, courses, userRepo, logger.Named("enrollment"))
	timetableService := timetable.NewDefaultTimetableService(timetables, courses, userRepo, enrollmentService, dispatcher, logger.Named("timetable"))
	notificationService := notification.NewDefaultNotificationService(notifications, userRepo, logger.Named("notification"))

	engine := booking.NewEngine(rooms, newRoomLocker(utils.GetCacheClient(), logger), dispatcher, logger.Named("booking"))
	roomService := room.NewDefaultRoomService(rooms, engine, logger.Named("room"))

	worker := cron.InitNotificationWorker(notificationService)

	utils.StartHealthMonitor(rootCtx, []*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()}, database.MongoClient)

	limiter := middleware.NewRateLimiter(config.AppConfig.MaxRequestsPerMin)
	go limiter.Cleanup(rootCtx, time.Minute, 10*time.Minute)

	handlerBundle := &handlers.HandlerBundle{
		Tokens:       tokens,
		Revocations:  tokenStore,
		User:         &handlers.UserHandler{UserService: userService},
		Course:       &handlers.CourseHandler{CourseService: courseService},
		Enrollment:   &handlers.EnrollmentHandler{EnrollmentService: enrollmentService},
		Timetable:    &handlers.TimetableHandler{TimetableService: timetableService},
		Room:         &handlers.RoomHandler{RoomService: roomService},
		Notification: &handlers.NotificationHandler{NotificationService: notificationService},
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	if err := middleware.ConfigureTrustedProxies(router, config.AppConfig.TrustedProxies); err != nil {
		logger.Fatal("main: invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	routes.RegisterRoutes(router, handlerBundle, limiter)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	utils.CloseRedis()
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Warnf("main: mongo disconnect: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// newRoomLocker picks the per-room mutual exclusion backend. Multi-instance
// deployments need the Redis lock; the compare-and-swap save guards either way.
func newRoomLocker(client *redis.Client, logger *zap.Logger) booking.RoomLocker {
	if config.AppConfig.BookingLock == "redis" {
		logger.Info("Using Redis room locks", zap.Duration("ttl", config.BookingLockTTL()))
		return booking.NewRedisLocker(client, config.BookingLockTTL())
	}
	return booking.NewLocalLocker()
}
