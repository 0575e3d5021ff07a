package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/viper"
	amqp "github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storefront/internal/handlers"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseDSN := viper.GetString("DATABASE_DSN")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize Repositories ---
	// With a DSN the catalog runs on PostgreSQL; without one it falls back
	// to the in-memory repositories with a seeded fixture catalog.
	var productRepo repositories.ProductRepository
	var userRepo repositories.UserRepository
	if databaseDSN != "" {
		db, err := gorm.Open(postgres.Open(databaseDSN), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.Product{}, &models.User{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		productRepo = repositories.NewGORMProductRepository(db)
		userRepo = repositories.NewGORMUserRepository(db)
	} else {
		log.Println("DATABASE_DSN not set, using in-memory repositories")
		memProductRepo := repositories.NewMockProductRepository()
		seedProducts(memProductRepo)
		productRepo = memProductRepo
		userRepo = repositories.NewMockUserRepository()
	}

	// --- Initialize RabbitMQ Client (optional) ---
	var events services.EventPublisher
	if rabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient

		// --- Start RabbitMQ Consumer in a Goroutine ---
		// Logs every catalog event delivery. A real deployment would hand
		// these to inventory sync or notification workers.
		go func() {
			log.Println("Starting RabbitMQ consumer for catalog events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received catalog event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeCatalogEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	} else {
		log.Println("RABBITMQ_URL not set, catalog events disabled")
	}

	// --- Initialize Services ---
	catalogService := services.NewCatalogService(productRepo, events)
	authService := services.NewAuthService(userRepo)

	// --- Initialize Handlers ---
	productHandler := handlers.NewProductHandler(catalogService)
	authHandler := handlers.NewAuthHandler(authService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New())  // Request logger
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // The SPA runs on a different origin

	// --- API Routes ---
	api := app.Group("/api")
	productHandler.RegisterRoutes(api)
	authHandler.RegisterRoutes(api)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// seedProducts populates the in-memory product repository with a small
// fixture catalog so the storefront has something to browse.
func seedProducts(repo repositories.ProductRepository) {
	products := []models.Product{
		{
			Name:        "Fjallraven Foldsack No. 1 Backpack",
			Price:       109.95,
			Quantity:    25,
			Description: "Your perfect pack for everyday use and walks in the forest.",
			Image:       "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg",
			Category:    "men's clothing",
			Rating:      models.Rating{Rate: 3.9, Count: 120},
			UserID:      "seed-user",
		},
		{
			Name:        "Solid Gold Petite Micropave Ring",
			Price:       168.00,
			Quantity:    10,
			Description: "Satisfaction guaranteed. Return or exchange any order within 30 days.",
			Image:       "https://fakestoreapi.com/img/71YAIFU48IL._AC_UL640_QL65_ML3_.jpg",
			Category:    "jewelery",
			Rating:      models.Rating{Rate: 3.9, Count: 70},
			UserID:      "seed-user",
		},
		{
			Name:        "WD 2TB Elements Portable External Hard Drive",
			Price:       64.00,
			Quantity:    50,
			Description: "USB 3.0 and USB 2.0 compatibility. Fast data transfers.",
			Image:       "https://fakestoreapi.com/img/61IBBVJvSDL._AC_SY879_.jpg",
			Category:    "electronics",
			Rating:      models.Rating{Rate: 4.3, Count: 203},
			UserID:      "seed-user",
		},
		{
			Name:        "Opna Women's Short Sleeve Moisture Shirt",
			Price:       7.95,
			Quantity:    100,
			Description: "100% Polyester, machine wash. Lightweight and breathable fabric.",
			Image:       "https://fakestoreapi.com/img/51eg55uWmdL._AC_UX679_.jpg",
			Category:    "women's clothing",
			Rating:      models.Rating{Rate: 4.5, Count: 146},
			UserID:      "seed-user",
		},
	}

	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
		}
	}
}
