package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/lib/pq"

	"github.com/Aul-rhmn/merchant-order/internal/client"
	"github.com/Aul-rhmn/merchant-order/internal/handlers"
	"github.com/Aul-rhmn/merchant-order/internal/messaging"
	"github.com/Aul-rhmn/merchant-order/internal/repository"
	"github.com/Aul-rhmn/merchant-order/internal/service"
)

func main() {
	log.Println("Merchant order service starting...")

	backend, err := initBackend()
	if err != nil {
		log.Fatalf("Persistence backend error: %v", err)
	}

	catalog := repository.NewCatalogStore(repository.FallbackProducts())
	orderStore, err := repository.NewOrderStore(catalog, backend)
	if err != nil {
		log.Fatalf("Order store error: %v", err)
	}

	apiURL := getEnvOrDefault("PRODUCT_API_URL", "https://recruitment-spe.vercel.app/api/v1")
	apiToken := os.Getenv("PRODUCT_API_TOKEN")
	probe := client.NewProbe(apiURL, apiToken)
	remote := client.NewRemoteCatalog(apiURL, apiToken)

	// Order lifecycle events are optional: without a broker the service
	// runs the same, just silent.
	events := initEvents()

	productService := service.NewProductService(catalog, remote, probe)
	orderService := service.NewOrderService(orderStore, events)

	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := setupFiberApp()
	setupRoutes(app, productHandler, orderHandler)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Merchant order service closing...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	port := getEnvOrDefault("PORT", "8080")
	log.Printf("Merchant order service listening: http://localhost:%s", port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Server start error: %v", err)
	}
}

func initBackend() (repository.PersistenceBackend, error) {
	switch kind := getEnvOrDefault("ORDER_BACKEND", "memory"); kind {
	case "memory":
		return repository.NewMemoryBackend(nil), nil
	case "file":
		path := getEnvOrDefault("ORDER_FILE", "merchant_orders.json")
		return repository.NewFileBackend(path), nil
	case "postgres":
		db, err := initDatabase()
		if err != nil {
			return nil, err
		}
		backend := repository.NewPostgresBackend(db)
		if err := backend.EnsureSchema(); err != nil {
			return nil, err
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("unknown ORDER_BACKEND: %s", kind)
	}
}

func initDatabase() (*sql.DB, error) {
	dbHost := getEnvOrDefault("DB_HOST", "localhost")
	dbPort := getEnvOrDefault("DB_PORT", "5432")
	dbUser := getEnvOrDefault("DB_USER", "postgres")
	dbPassword := getEnvOrDefault("DB_PASSWORD", "postgres")
	dbName := getEnvOrDefault("DB_NAME", "merchant_db")

	connectionString := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName,
	)

	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("database open error: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("database ping error: %w", err)
	}

	log.Printf("Database connected: %s", dbName)
	return db, nil
}

func initEvents() service.EventPublisher {
	if os.Getenv("RABBITMQ_HOST") == "" {
		return nil
	}

	rabbitConfig := messaging.NewRabbitMQConfig()
	rabbitClient := messaging.NewRabbitMQClient(rabbitConfig)
	if err := rabbitClient.Connect(); err != nil {
		log.Printf("RabbitMQ unavailable, order events disabled: %v", err)
		return nil
	}
	return messaging.NewPublisher(rabbitClient)
}

func setupFiberApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Merchant Order Service v1.0",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} - ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID",
	}))

	return app
}

func setupRoutes(app *fiber.App, productHandler *handlers.ProductHandler, orderHandler *handlers.OrderHandler) {
	app.Get("/health", orderHandler.HealthCheck)

	app.Get("/products", productHandler.ListProducts)
	app.Get("/products/status", productHandler.GetSourceStatus)

	app.Get("/orders", orderHandler.ListOrders)
	app.Post("/orders", orderHandler.CreateOrder)
	app.Get("/orders/:id", orderHandler.GetOrderByID)
	app.Delete("/orders/:id", orderHandler.DeleteOrder)

	app.Use("*", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Route not found",
		})
	})
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	log.Printf("Error: %v", err)

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
