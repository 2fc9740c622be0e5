package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/PrayerJournal/controllers"
	"github.com/PrayerJournal/initializers"
	"github.com/PrayerJournal/middlewares"
	"github.com/PrayerJournal/services"
)

// bootstrap loads config, connects storage and builds the prayer store.
// It exits the process on any failure.
func bootstrap() {
	initializers.LoadEnv()
	if initializers.Cfg.GinMode != "" {
		gin.SetMode(initializers.Cfg.GinMode)
	}
	initializers.InitLogger(initializers.Cfg.LogLevel)
	initializers.ConnectDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := initializers.Migrate(ctx, initializers.DB); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	if err := services.InitRoster(initializers.Cfg.RosterFile); err != nil {
		log.Fatal().Err(err).Msg("Failed to load roster")
	}
	services.InitPrayerStore(services.NewSQLPrayerStore(initializers.DB, services.GetRoster()))
}

func main() {
	bootstrap()

	cfg := initializers.Cfg
	router := setupRouter(cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().
			Str("database", initializers.DescribeDB(cfg)).
			Str("addr", "http://localhost:"+cfg.Port).
			Msg("Prayer Journal running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	if db, ok := initializers.DB.Db.(interface{ Close() error }); ok {
		db.Close()
	}
}

func setupRouter(cfg initializers.Config) *gin.Engine {
	router := gin.New()
	router.Use(middlewares.RequestLogger())
	router.Use(gin.Recovery())

	router.Use(secure.New(secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(cfg.CORSAllowOrigins) == 0 || cfg.CORSAllowOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowOrigins
	}
	router.Use(cors.New(corsConfig))

	router.GET("/ping", controllers.Ping)

	api := router.Group("/api")
	{
		api.GET("/people", controllers.GetPeople)
		api.GET("/prayers/:name", controllers.GetPrayers)
		api.POST("/prayers/:name",
			middlewares.RateLimitMiddleware(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, middlewares.ClientIPKey),
			controllers.CreatePrayer)
	}

	// everything else is the presentation client
	fileServer := http.FileServer(gin.Dir(cfg.StaticDir, false))
	router.NoRoute(func(c *gin.Context) {
		isRead := c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead
		if !isRead || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		fileServer.ServeHTTP(c.Writer, c.Request)
	})

	return router
}
