package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/AhsanIqbal-web/shopify-data-connector/internal/application"
	"github.com/AhsanIqbal-web/shopify-data-connector/internal/application/webhook_handlers"
	"github.com/AhsanIqbal-web/shopify-data-connector/internal/domain"
	apiinfra "github.com/AhsanIqbal-web/shopify-data-connector/internal/infrastructure/api"
	"github.com/AhsanIqbal-web/shopify-data-connector/internal/infrastructure/encryption"
	"github.com/AhsanIqbal-web/shopify-data-connector/internal/infrastructure/repository"
	"github.com/AhsanIqbal-web/shopify-data-connector/internal/infrastructure/sessionstore"
	shopifyinfra "github.com/AhsanIqbal-web/shopify-data-connector/internal/infrastructure/shopify"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	securitymiddleware "github.com/AhsanIqbal-web/shopify-data-connector/internal/infrastructure/middleware"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	// Get configuration from environment
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	mongoDatabase := os.Getenv("MONGODB_DATABASE")
	if mongoDatabase == "" {
		mongoDatabase = "shopify_connector"
	}

	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	shopifyAPIKey := os.Getenv("SHOPIFY_API_KEY")
	shopifyAPISecret := os.Getenv("SHOPIFY_API_SECRET")
	if shopifyAPIKey == "" || shopifyAPISecret == "" {
		logger.Fatal().Msg("SHOPIFY_API_KEY and SHOPIFY_API_SECRET environment variables are required")
	}

	scopes := os.Getenv("SHOPIFY_SCOPES")
	if scopes == "" {
		scopes = "read_orders,read_customers,read_products,read_inventory,read_analytics,read_locations"
	}

	// Reserved for signing outgoing data responses; nothing consumes it yet
	if os.Getenv("API_SIGNING_SECRET") == "" {
		logger.Debug().Msg("API_SIGNING_SECRET not set")
	}

	encryptionKey := os.Getenv("ENCRYPTION_KEY")
	if encryptionKey == "" {
		logger.Fatal().Msg("ENCRYPTION_KEY environment variable is required")
	}

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(mongoDatabase)

	// Initialize infrastructure (implementations)
	encryptionService, err := encryption.NewService(encryptionKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}

	storeRepo := repository.NewMongoStoreRepository(db)
	webhookEventRepo := repository.NewMongoWebhookEventRepository(db)

	sessionStore, err := sessionstore.NewRedisSessionStore(redisAddr, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	shopifyClient := shopifyinfra.NewClient(
		shopifyAPIKey,
		shopifyAPISecret,
		strings.Split(scopes, ","),
		appURL+"/auth/callback",
		logger,
	)

	// Initialize application services
	authService := application.NewAuthService(
		storeRepo,
		sessionStore,
		shopifyClient,
		encryptionService,
		logger,
		appURL+"/webhooks/shopify",
	)

	selectionService := application.NewSelectionService(storeRepo, logger, appURL)

	gatewayService := application.NewGatewayService(
		storeRepo,
		shopifyClient,
		encryptionService,
		logger,
	)

	webhookService := application.NewWebhookService(webhookEventRepo, logger)
	webhookService.RegisterHandler(webhook_handlers.NewAppUninstalledHandler(logger, storeRepo))
	webhookService.RegisterHandler(webhook_handlers.NewShopUpdateHandler(logger, storeRepo))

	webhookVerifier := shopifyinfra.NewWebhookVerifier(shopifyAPISecret)

	dataAPI := apiinfra.NewDataAPI(gatewayService, selectionService, webhookService, webhookVerifier, logger)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(securitymiddleware.SecurityHeadersMiddleware())
	r.Use(securitymiddleware.MetricsMiddleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Health check - must be public for monitoring
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // The URL pointing to API definition
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})

	// Onboarding routes
	r.Get("/", entryHandler(authService, logger))
	r.Get("/auth/callback", oauthCallbackHandler(authService, logger))
	r.Get("/dashboard", dashboardHandler(authService, logger))

	// Data selection and gateway API
	r.Post("/api/data-selections", dataAPI.HandleUpdateSelections)
	r.Get("/api/data/{apiKey}", dataAPI.HandleFetchData)
	r.Get("/api/key-info", dataAPI.HandleKeyInfo)

	// Webhook endpoint
	r.Post("/webhooks/shopify", dataAPI.HandleWebhook)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("Starting API server")
	logger.Info().Msg("Swagger documentation available at http://localhost:" + port + "/swagger/index.html")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

// entryHandler is the install entry point. A connected shop goes straight to
// the dashboard; anything else is sent into the OAuth flow.
func entryHandler(authService *application.AuthService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		shop := r.URL.Query().Get("shop")
		if shop == "" {
			http.Error(w, "shop parameter is required", http.StatusBadRequest)
			return
		}

		authenticated, err := authService.Authenticated(ctx, shop)
		if err != nil {
			logger.Error().Err(err).Str("shop", shop).Msg("Failed to check store record")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if authenticated {
			http.Redirect(w, r, "/dashboard?shop="+url.QueryEscape(shop), http.StatusFound)
			return
		}

		authURL, err := authService.BeginAuth(ctx, shop)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidShop) {
				http.Error(w, "invalid shop domain", http.StatusBadRequest)
				return
			}
			logger.Error().Err(err).Str("shop", shop).Msg("Failed to begin OAuth flow")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, authURL, http.StatusFound)
	}
}

// oauthCallbackHandler handles the OAuth callback
func oauthCallbackHandler(authService *application.AuthService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		shop := r.URL.Query().Get("shop")
		code := r.URL.Query().Get("code")
		state := r.URL.Query().Get("state")

		if shop == "" || code == "" || state == "" {
			http.Error(w, "Missing required parameters", http.StatusBadRequest)
			return
		}

		record, err := authService.CompleteAuth(ctx, application.CallbackParams{
			Shop:  shop,
			Code:  code,
			State: state,
			URL:   r.URL,
		})
		if err != nil {
			logger.Error().Err(err).Str("shop", shop).Msg("Failed to complete OAuth")
			if errors.Is(err, domain.ErrAuth) {
				http.Error(w, "Failed to complete installation", http.StatusInternalServerError)
				return
			}
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/dashboard?shop="+url.QueryEscape(record.Shop), http.StatusFound)
	}
}

// dashboardHandler serves the static selection dashboard
func dashboardHandler(authService *application.AuthService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shop := r.URL.Query().Get("shop")
		if shop == "" {
			http.Error(w, "shop parameter is required", http.StatusBadRequest)
			return
		}

		authenticated, err := authService.Authenticated(r.Context(), shop)
		if err != nil {
			logger.Error().Err(err).Str("shop", shop).Msg("Failed to check store record")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if !authenticated {
			http.Error(w, "store not found", http.StatusNotFound)
			return
		}

		http.ServeFile(w, r, "./web/dashboard.html")
	}
}
