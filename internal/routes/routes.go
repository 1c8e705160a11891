package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"hospital-management-server/internal/config"
	"hospital-management-server/internal/handlers"
	"hospital-management-server/internal/middleware"
	"hospital-management-server/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	patientHandler := handlers.NewPatientHandler(db)
	doctorHandler := handlers.NewDoctorHandler(db)
	departmentHandler := handlers.NewDepartmentHandler(db)
	wardHandler := handlers.NewWardHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db)
	medicalRecordHandler := handlers.NewMedicalRecordHandler(db)
	invoiceHandler := handlers.NewInvoiceHandler(db)
	inventoryHandler := handlers.NewInventoryHandler(db)
	wasteHandler := handlers.NewWasteHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// Patient registry
		patientRoutes := private.Group("/patients")
		{
			patientRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff, models.RoleNurse), patientHandler.CreatePatient)
			patientRoutes.GET("", patientHandler.GetPatients)
			patientRoutes.GET("/:id", patientHandler.GetPatientByID)
			patientRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff, models.RoleNurse), patientHandler.UpdatePatient)
			patientRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), patientHandler.DeactivatePatient)
		}

		// Doctor profiles
		doctorRoutes := private.Group("/doctors")
		{
			doctorRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin), doctorHandler.CreateDoctor)
			doctorRoutes.GET("", doctorHandler.GetDoctors)
			doctorRoutes.GET("/:id", doctorHandler.GetDoctorByID)
			doctorRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleDoctor), doctorHandler.UpdateDoctor)
		}

		// Departments and wards
		departmentRoutes := private.Group("/departments")
		{
			departmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin), departmentHandler.CreateDepartment)
			departmentRoutes.GET("", departmentHandler.GetDepartments)
			departmentRoutes.GET("/:id", departmentHandler.GetDepartmentByID)
		}
		wardRoutes := private.Group("/wards")
		{
			wardRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin), wardHandler.CreateWard)
			wardRoutes.GET("", wardHandler.GetWards)
			wardRoutes.GET("/:id", wardHandler.GetWardByID)
		}

		// Appointment lifecycle
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", appointmentHandler.BookAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PUT("/:id/status", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleDoctor, models.RoleNurse), appointmentHandler.UpdateAppointmentStatus)
			appointmentRoutes.PUT("/:id/reschedule", appointmentHandler.RescheduleAppointment)
			appointmentRoutes.PUT("/:id/cancel", appointmentHandler.CancelAppointment)
		}

		// Medical records
		medicalRecordRoutes := private.Group("/medical-records")
		{
			medicalRecordRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), medicalRecordHandler.CreateMedicalRecord)
			medicalRecordRoutes.GET("/patient/:patientId", medicalRecordHandler.GetMedicalRecordsForPatient)
			medicalRecordRoutes.GET("/:id", medicalRecordHandler.GetMedicalRecordByID)
			medicalRecordRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), medicalRecordHandler.UpdateMedicalRecord)
		}

		// Billing ledger
		invoiceRoutes := private.Group("/invoices")
		{
			invoiceRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff), invoiceHandler.CreateInvoice)
			invoiceRoutes.GET("", invoiceHandler.GetInvoices)
			invoiceRoutes.GET("/:id", invoiceHandler.GetInvoiceByID)
			invoiceRoutes.PUT("/:id/payment", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff), invoiceHandler.RecordPayment)
		}

		// Inventory
		inventoryRoutes := private.Group("/inventory")
		{
			inventoryRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff), inventoryHandler.CreateInventoryItem)
			inventoryRoutes.GET("", inventoryHandler.GetInventory)
			inventoryRoutes.GET("/low-stock", inventoryHandler.GetLowStockItems)
			inventoryRoutes.GET("/:id", inventoryHandler.GetInventoryItemByID)
			inventoryRoutes.PUT("/:id/quantity", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff, models.RoleNurse), inventoryHandler.UpdateQuantity)
		}

		// Medical waste compliance
		wasteRoutes := private.Group("/medical-waste")
		{
			wasteRoutes.POST("", wasteHandler.CreateWasteEntry)
			wasteRoutes.GET("", wasteHandler.GetWasteRecords)
			wasteRoutes.GET("/report/generate", wasteHandler.GenerateWasteReport)
			wasteRoutes.GET("/:id", wasteHandler.GetWasteByID)
			wasteRoutes.PUT("/:id/status", wasteHandler.UpdateWasteStatus)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
