package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fleettrack-api/auth"
	"fleettrack-api/config"
	"fleettrack-api/controllers"
	"fleettrack-api/middleware"
	"fleettrack-api/schema"
	"fleettrack-api/services"
	"fleettrack-api/storage"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, fields *schema.VehicleFields, files *storage.Store, log *zap.Logger) {
	// Services
	vehicleService := services.NewVehicleService(db, files, log)
	recordService := services.NewRecordService(db, files, log)
	vehicleQuery := services.NewVehicleQuery(db)

	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret)
	vehicleController := controllers.NewVehicleController(vehicleService, vehicleQuery, fields)
	workOrderController := controllers.NewWorkOrderController(recordService)
	fuelLogController := controllers.NewFuelLogController(recordService)
	maintenanceController := controllers.NewMaintenanceController(recordService)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Uploaded attachments are served straight from the upload directory.
	r.Static("/static/uploads", files.Root())

	// API version 1
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(120, 20))

	// Auth routes (public)
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", authController.Register)
		authRoutes.POST("/login", authController.Login)
		authRoutes.POST("/logout", authController.Logout)
	}

	// Protected routes: every handler sits behind the capability gate for
	// its action.
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/schema/fields",
			middleware.RequireAction(auth.ActionRead), vehicleController.GetSchemaFields)

		vehicles := protected.Group("/vehicles")
		{
			vehicles.GET("",
				middleware.RequireAction(auth.ActionRead), vehicleController.ListVehicles)
			vehicles.POST("",
				middleware.RequireAction(auth.ActionCreate), vehicleController.CreateVehicle)
			vehicles.GET("/:id",
				middleware.RequireAction(auth.ActionRead), vehicleController.GetVehicle)
			vehicles.PUT("/:id",
				middleware.RequireAction(auth.ActionUpdate), vehicleController.UpdateVehicle)
			vehicles.DELETE("/:id",
				middleware.RequireAction(auth.ActionDelete), vehicleController.DeleteVehicle)

			vehicles.GET("/:id/work-orders",
				middleware.RequireAction(auth.ActionRead), workOrderController.ListWorkOrders)
			vehicles.POST("/:id/work-orders",
				middleware.RequireAction(auth.ActionCreate), workOrderController.CreateWorkOrder)

			vehicles.GET("/:id/fuel-logs",
				middleware.RequireAction(auth.ActionRead), fuelLogController.ListFuelLogs)
			vehicles.POST("/:id/fuel-logs",
				middleware.RequireAction(auth.ActionCreate), fuelLogController.CreateFuelLog)

			vehicles.GET("/:id/maintenance",
				middleware.RequireAction(auth.ActionRead), maintenanceController.ListMaintenanceLogs)
			vehicles.POST("/:id/maintenance",
				middleware.RequireAction(auth.ActionCreate), maintenanceController.CreateMaintenanceLog)
		}
	}
}
