package routes

import (
	"lubripro-backend/config"
	"lubripro-backend/controllers"
	"lubripro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
		}

		// Vehicle routes
		vehicles := api.Group("/vehicles")
		{
			vehicles.POST("", controllers.CreateVehicle)
			vehicles.GET("", controllers.GetVehicles)
			vehicles.GET("/:id", controllers.GetVehicle)
			vehicles.PUT("/:id", controllers.UpdateVehicle)
			vehicles.GET("/:id/maintenance", controllers.GetVehicleMaintenance)
		}

		// Service catalog routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.PATCH("/:id/status", controllers.UpdateAppointmentStatus)
		}

		// Work order routes
		workorders := api.Group("/workorders")
		{
			workorders.POST("", controllers.CreateWorkOrder)
			workorders.GET("", controllers.GetWorkOrders)
			workorders.GET("/:id", controllers.GetWorkOrder)
			workorders.PUT("/:id", controllers.UpdateWorkOrder)
			workorders.POST("/:id/deliver", controllers.DeliverWorkOrder)
		}

		// Sale routes
		sales := api.Group("/sales")
		{
			sales.POST("", controllers.CreateDraftSale)
			sales.GET("", controllers.GetSales)
			sales.GET("/:id", controllers.GetSale)
			sales.POST("/:id/confirm", controllers.ConfirmSale)
		}

		// Product routes
		products := api.Group("/products")
		{
			products.POST("", controllers.CreateProduct)
			products.GET("", controllers.GetProducts)
			products.PUT("/:id", controllers.UpdateProduct)
		}

		// Lead inbox routes
		leads := api.Group("/leads")
		{
			leads.POST("", controllers.CreateLead)
			leads.POST("/intake", controllers.IntakeLead)
			leads.GET("", controllers.GetLeads)
			leads.PUT("/:id", controllers.UpdateLead)
			leads.POST("/:id/logs", controllers.AddLeadLog)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports/revenue", reportController.GetRevenueReport)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
