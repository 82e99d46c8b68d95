package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"fitcats/config"
	"fitcats/controllers"
	"fitcats/db"
	"fitcats/middlewares"
	"fitcats/models"
	"fitcats/routes"
	"fitcats/services"
	"fitcats/steps"
	"fitcats/store"
	"fitcats/utils"
	"fitcats/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "./config/config.yml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	if cfg.Redis.Addr != "" {
		if err := db.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
			log.Printf("Redis unavailable, caching and rate limiting disabled: %v", err)
		}
	}

	ctx := context.Background()
	documents := store.NewMongoStore(db.MongoDatabase)

	if err := utils.SeedRanks(ctx, documents); err != nil {
		log.Fatalf("Failed to seed ranks: %v", err)
	}

	// The ladder is loaded once and validated here; an inconsistent ladder
	// is a startup failure, not a mid-request surprise.
	rankService, err := services.NewRankService(ctx, documents)
	if err != nil {
		log.Fatalf("Failed to load rank ladder: %v", err)
	}

	tracker := services.NewStepTracker(documents, rankService)
	tracker.OnEvent = func(event models.StepEvent) {
		websocket.BroadcastStepEvent(event)
	}

	authService, err := services.NewAuthService(ctx, cfg, documents, rankService)
	if err != nil {
		log.Fatalf("Failed to initialize auth service: %v", err)
	}

	leagueService := services.NewLeagueService(documents)
	leaderboardService := services.NewLeaderboardService(documents)
	socialService := services.NewSocialGraphService(documents)

	sessionManager := services.NewSessionManager(stepSubscription(cfg, tracker))

	controllers.Init(documents, authService, rankService, tracker,
		leagueService, leaderboardService, socialService, sessionManager)

	router := setupRouter(authService)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// stepSubscription wires the per-session sensor poller when a step source is
// configured. Without one, sessions rely on client-pushed observations via
// POST /steps/observe.
func stepSubscription(cfg *config.Config, tracker *services.StepTracker) services.SubscriptionFunc {
	if cfg.Steps.SourceURL == "" {
		return nil
	}
	factory := steps.NewHTTPSourceFactory(cfg.Steps.SourceURL)
	interval := cfg.StepPollInterval()
	return func(ctx context.Context, userID string) {
		steps.NewPoller(factory(userID), tracker, interval).Run(ctx, userID)
	}
}

func setupRouter(authService *services.AuthService) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	routes.SetupPublic(router)

	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware(authService))
	routes.SetupAuthenticated(auth)

	return router
}
