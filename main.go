package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vtech-solutions/garage-api/config"
	"github.com/vtech-solutions/garage-api/controllers"
	"github.com/vtech-solutions/garage-api/middleware"
	"github.com/vtech-solutions/garage-api/models"
)

func main() {
	// Basic logging
	log.Println("Starting VTech Garage API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Mechanic{},
		&models.Service{},
		&models.Product{},
		&models.StockLog{},
		&models.JobSheet{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter assembles the Gin router with all routes and middleware
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// The dashboard SPA is served from a different origin
	router.Use(cors.Default())

	api := router.Group("/api")
	{
		// Health check endpoint
		api.GET("/health", healthCheck)

		// Database status endpoint
		api.GET("/database/status", databaseStatus)

		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
			auth.GET("/verify", middleware.RequireAuth(cfg), controllers.Verify)
			auth.GET("/users", middleware.RequireAuth(cfg), middleware.RequireAdmin(), controllers.ListUsers)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(cfg))
		{
			protected.GET("/clients", controllers.ListClients)
			protected.POST("/clients", controllers.CreateClient)
			protected.PUT("/clients/:id", controllers.UpdateClient)
			protected.DELETE("/clients/:id", controllers.DeleteClient)

			protected.GET("/mechanics", controllers.ListMechanics)
			protected.POST("/mechanics", controllers.CreateMechanic)
			protected.PUT("/mechanics/:id", controllers.UpdateMechanic)
			protected.DELETE("/mechanics/:id", controllers.DeleteMechanic)

			protected.GET("/services", controllers.ListServices)
			protected.POST("/services", controllers.CreateService)
			protected.PUT("/services/:id", controllers.UpdateService)
			protected.DELETE("/services/:id", controllers.DeleteService)

			protected.GET("/products", controllers.ListProducts)
			protected.POST("/products", controllers.CreateProduct)
			protected.PUT("/products/:id", controllers.UpdateProduct)
			protected.DELETE("/products/:id", controllers.DeleteProduct)

			protected.POST("/inventory/update-stock", controllers.UpdateStock)
			protected.GET("/inventory/logs", controllers.ListStockLogs)

			protected.GET("/jobsheets", controllers.ListJobSheets)
			protected.POST("/jobsheets", controllers.CreateJobSheet)
			protected.GET("/jobsheets/:id", controllers.GetJobSheet)
			protected.PUT("/jobsheets/:id", controllers.UpdateJobSheet)
			protected.DELETE("/jobsheets/:id", controllers.DeleteJobSheet)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Route not found",
			},
		})
	})

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "VTech Garage API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
