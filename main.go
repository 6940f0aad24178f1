package main

import (
	"fmt"
	"log"
	"os"

	"lubripro-backend/config"
	"lubripro-backend/controllers"
	"lubripro-backend/models"
	"lubripro-backend/routes"
	"lubripro-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Vehicle{},
		&models.Service{},
		&models.Appointment{},
		&models.WorkOrder{},
		&models.WorkOrderItem{},
		&models.Product{},
		&models.Sale{},
		&models.SaleItem{},
		&models.LeadCase{},
		&models.LeadLog{},
		&models.MessageLog{},
	)
}

func main() {
	controllers.WhatsApp = services.NewWhatsAppService(config.DB)
	controllers.Leads = services.NewLeadService(config.DB)
	controllers.WhatsApp.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
