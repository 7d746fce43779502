package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"darimac/internal/handlers"
	"darimac/internal/models"
	"darimac/internal/repositories"
	"darimac/internal/services"
	"darimac/pkg/imagehost"
	"darimac/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite") // sqlite, postgres or memory
	viper.SetDefault("DB_DSN", "darimac.db")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables event publishing
	viper.SetDefault("IMAGE_HOST_URL", "https://images.darimac.example")
	viper.SetDefault("IMAGE_HOST_FOLDER", "computer-accessories")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Repositories ---
	productRepo, orderRepo, err := buildRepositories(viper.GetString("DB_DRIVER"), viper.GetString("DB_DSN"))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, mqErr := rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if mqErr != nil {
			// The storefront stays up without the broker; events are
			// simply skipped.
			log.Printf("Warning: RabbitMQ unavailable, order events disabled: %v", mqErr)
		} else {
			defer mqClient.Close()
			publisher = mqClient

			log.Println("Starting RabbitMQ consumer for order events...")
			if consumerErr := mqClient.ConsumeOrderEvents(func(msg amqp.Delivery) error {
				log.Printf("Received order event (tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}
	}

	// --- Services ---
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, publisher)

	// --- Image host client ---
	imageClient := imagehost.NewClient(imagehost.Config{
		BaseURL: viper.GetString("IMAGE_HOST_URL"),
		Folder:  viper.GetString("IMAGE_HOST_FOLDER"),
	})

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	uploadHandler := handlers.NewUploadHandler(imageClient)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")
	productHandler.RegisterRoutes(apiV1)
	orderHandler.RegisterRoutes(apiV1)
	uploadHandler.RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP server ---
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

// buildRepositories opens the configured persistence backend. The memory
// driver skips the database entirely and serves from process memory.
func buildRepositories(driver, dsn string) (repositories.ProductRepository, repositories.OrderRepository, error) {
	if driver == "memory" {
		return repositories.NewMemoryProductRepository(), repositories.NewMemoryOrderRepository(), nil
	}

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	if err := db.AutoMigrate(
		&models.Product{},
		&models.ProductImage{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return nil, nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return repositories.NewGORMProductRepository(db), repositories.NewGORMOrderRepository(db), nil
}
