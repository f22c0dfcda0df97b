package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"jubili-gateway/internal/cache"
	"jubili-gateway/internal/checkout"
	"jubili-gateway/internal/clients"
	"jubili-gateway/internal/config"
	"jubili-gateway/internal/database"
	"jubili-gateway/internal/events"
	"jubili-gateway/internal/handlers"
	"jubili-gateway/internal/metrics"
	"jubili-gateway/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("⚠️ user index warning: %v", err)
	}

	checkoutMetrics := metrics.NewCheckoutMetrics()

	var quoteCache *cache.QuoteCache
	if config.AppEnv.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: config.AppEnv.RedisAddr})
		quoteCache = cache.NewQuoteCache(redisClient, config.AppEnv.QuoteCacheTTL)
		log.Println("Redis quote cache enabled:", config.AppEnv.RedisAddr)
	}

	catalog := clients.NewCatalogClient(config.AppEnv.CatalogBaseURL, config.AppEnv.ClientTimeout)
	shipping := clients.NewShippingClient(config.AppEnv.ShippingBaseURL, config.AppEnv.ClientTimeout)
	payments := clients.NewPaymentClient(config.AppEnv.PaymentBaseURL, config.AppEnv.ClientTimeout)

	broker := events.NewBroker(checkoutMetrics)
	if consumer := events.NewConsumer(config.AppEnv.KafkaBrokers, config.AppEnv.OrderEventTopic, broker); consumer != nil {
		defer consumer.Close()
		go consumer.Run(context.Background())
	} else {
		log.Println("no Kafka brokers configured, order event consumer disabled")
	}

	aggregator := checkout.NewAggregator(shipping, quoteCache, checkoutMetrics)
	service := checkout.NewService(catalog, payments, aggregator, broker, checkoutMetrics)

	r := gin.Default()
	r.Use(middleware.RequestID())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.GET("/api/sse/orders/stream", handlers.OrderStream(broker))

	user := r.Group("/user")
	user.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		user.GET("/addresses", handlers.GetUserAddresses(db))
		user.POST("/addresses", handlers.CreateUserAddress(db))
		user.PUT("/addresses/:id", handlers.UpdateUserAddress(db))
		user.DELETE("/addresses/:id", handlers.DeleteUserAddress(db))
		user.PATCH("/addresses/:id/default", handlers.SetDefaultAddress(db))

		user.GET("/favorites", handlers.GetUserFavorites(db))
		user.POST("/favorites", handlers.AddUserFavorite(db, catalog))
		user.DELETE("/favorites/:productId", handlers.DeleteUserFavorite(db))
	}

	pay := r.Group("/checkout")
	pay.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		pay.GET("/:type/preview", handlers.CheckoutPreview(db, service))
		pay.POST("/:type/payment", handlers.InitiatePayment(db, service))
		pay.POST("/payment/verify", handlers.VerifyPayment(service))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
