package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/vayerart/storefront/pkg/catalog"
	"github.com/vayerart/storefront/pkg/cms"
	"github.com/vayerart/storefront/pkg/common"
	"github.com/vayerart/storefront/pkg/listing"
	"github.com/vayerart/storefront/pkg/messaging"
	"github.com/vayerart/storefront/pkg/server"
	"github.com/vayerart/storefront/pkg/shopify"
	"github.com/vayerart/storefront/pkg/tracking"
)

var storePrefix = "gallery"

func init() {
	if p, ok := os.LookupEnv("STORE_PREFIX"); ok {
		storePrefix = p
	}
}

func mustEnv(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		log.Fatalf("missing required environment variable %s", key)
	}
	return value
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	commerce := shopify.NewClient(shopify.Config{
		Domain:      mustEnv("SHOPIFY_DOMAIN"),
		AccessToken: mustEnv("SHOPIFY_STOREFRONT_TOKEN"),
		ApiVersion:  os.Getenv("SHOPIFY_API_VERSION"),
	})

	content := cms.NewClient(cms.Config{
		ProjectId:  mustEnv("CMS_PROJECT_ID"),
		Dataset:    envOr("CMS_DATASET", "production"),
		ApiVersion: os.Getenv("CMS_API_VERSION"),
		Token:      os.Getenv("CMS_TOKEN"),
	})

	filterCatalog := catalog.New(commerce)

	orchestrator := &listing.Orchestrator{
		Commerce: commerce,
		Curated:  content,
		Compiler: filterCatalog,
		Titles:   filterCatalog,
	}

	ws := &server.WebServer{
		Listing:  orchestrator,
		Catalog:  filterCatalog,
		Content:  content,
		Commerce: commerce,
		BaseUrl:  envOr("PUBLIC_BASE_URL", "https://www.vayerart.com"),
	}

	if redisAddr, ok := os.LookupEnv("REDIS_ADDR"); ok && redisAddr != "" {
		ws.Cache = server.NewCache(redisAddr, os.Getenv("REDIS_PASSWORD"), 0)
		defer ws.Cache.Close()
	}

	amqpUrl := os.Getenv("RABBIT_HOST")
	if amqpUrl != "" {
		conn, err := amqp.DialConfig(amqpUrl, amqp.Config{
			Properties: amqp.NewConnectionProperties(),
		})
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		if err := messaging.ListenForCatalogChanges(conn, storePrefix, filterCatalog); err != nil {
			log.Fatalf("Failed to listen for catalog changes: %v", err)
		}
		log.Printf("Listening for catalog changes")
		ws.Changes = messaging.NewCatalogPublisher(conn, storePrefix)

		tracker, err := tracking.NewRabbitTracking(amqpUrl, storePrefix)
		if err != nil {
			log.Printf("Failed to connect to rabbitmq for tracking: %v", err)
		} else {
			ws.Tracking = tracker
			defer tracker.Close()
		}
	}

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       30 * time.Second,
		Write:      60 * time.Second,
		Idle:       120 * time.Second,
		Shutdown:   10 * time.Second,
		Hook:       5 * time.Second,
	})

	srv := &http.Server{
		Addr:              envOr("LISTEN_ADDR", ":8080"),
		Handler:           ws.ClientHandler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
		ReadTimeout:       timeouts.Read,
		WriteTimeout:      timeouts.Write,
		IdleTimeout:       timeouts.Idle,
	}

	common.RunServerWithShutdown(srv, "storefront api", timeouts.Shutdown, timeouts.Hook)
}
