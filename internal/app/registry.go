package app

import (
	"database/sql"

	"uni-leave-portal/internal/auth"
	"uni-leave-portal/internal/availability"
	"uni-leave-portal/internal/faculty"
	"uni-leave-portal/internal/leave"
	"uni-leave-portal/internal/messaging/kafka"
	"uni-leave-portal/internal/middleware"
	"uni-leave-portal/internal/shared/counter"
	"uni-leave-portal/internal/timetable"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	facultyRepo := faculty.NewRepository(gormDB)
	timetableRepo := timetable.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(facultyRepo)
	facultyService := faculty.NewService(facultyRepo)
	timetableService := timetable.NewService(timetableRepo, rdb)
	availabilityService := availability.NewService(
		availability.NewFacultySource(facultyRepo),
		availability.NewTimetableSource(timetableRepo),
		leave.NewLeaveSource(leaveRepo),
	)
	leaveService := leave.NewService(
		db,
		leaveRepo,
		timetableRepo,
		facultyService,
		availabilityService,
		counterRepo,
		outboxRepo,
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	facultyHandler := faculty.NewHandler(facultyService)
	timetableHandler := timetable.NewHandler(timetableService)
	availabilityHandler := availability.NewHandler(availabilityService)
	leaveHandler := leave.NewHandler(leaveService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		faculty.RegisterRoutes(api, facultyHandler)
		timetable.RegisterRoutes(api, timetableHandler)
		availability.RegisterRoutes(api, availabilityHandler)
		leave.RegisterRoutes(api, leaveHandler, middleware.Idempotency(rdb))
	}

	return nil
}
