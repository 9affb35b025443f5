package routes

import (
	"net/http"

	"github.com/Nikk8744/F-T-T-sub000/constants"
	"github.com/Nikk8744/F-T-T-sub000/controllers"
	_ "github.com/Nikk8744/F-T-T-sub000/docs"
	middlewares "github.com/Nikk8744/F-T-T-sub000/middleware"
	"github.com/Nikk8744/F-T-T-sub000/services"
	"github.com/Nikk8744/F-T-T-sub000/services/logger"
	"github.com/Nikk8744/F-T-T-sub000/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps is everything the route table needs
type Deps struct {
	Tokens        *services.TokenService
	Notifications controllers.NotificationService
	Scheduler     controllers.DeadlineScheduler
	Directory     *notification.Directory
	Melody        *melody.Melody
	Logger        logger.Logger
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	router.Use(middlewares.RequestIDMiddleware(), middlewares.ErrorHandler(deps.Logger))

	notificationController := controllers.NewNotificationController(deps.Notifications)
	deadlineController := controllers.NewDeadlineController(deps.Scheduler, deps.Logger)
	wsController := controllers.NewWebSocketController(deps.Melody, deps.Directory, deps.Logger)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/ws", middlewares.AuthMiddleware(deps.Tokens), wsController.Connect)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")

	me := v1.Group("/notifications", middlewares.AuthMiddleware(deps.Tokens))
	me.GET("", notificationController.GetMyNotifications)
	me.GET("/unread-count", notificationController.GetUnreadCount)
	me.PUT("/read-all", notificationController.MarkAllRead)
	me.PUT("/:id/read", notificationController.MarkRead)
	me.DELETE("/:id", notificationController.DeleteNotification)

	admin := v1.Group("/admin", middlewares.AuthMiddleware(deps.Tokens), middlewares.RoleMiddleware(constants.RoleAdmin))
	admin.GET("/notifications/entity/:type/:id", notificationController.GetEntityNotifications)
	admin.POST("/deadlines/check", deadlineController.TriggerDeadlineCheck)
	admin.GET("/scheduler", deadlineController.GetSchedulerStatus)
	admin.POST("/scheduler/start", deadlineController.StartScheduler)
	admin.POST("/scheduler/stop", deadlineController.StopScheduler)
}
