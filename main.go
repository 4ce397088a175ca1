package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mealtracker/meal-tracker/config"
	"github.com/mealtracker/meal-tracker/database"
	"github.com/mealtracker/meal-tracker/desktop"
	"github.com/mealtracker/meal-tracker/router"
	"github.com/mealtracker/meal-tracker/services"
	"github.com/mealtracker/meal-tracker/utils"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	utils.InitLogger(cfg.LogLevel, cfg.LogFormat == "json")
	utils.InitJWT(cfg.JWTSecret, cfg.TokenTTL)
	utils.CurrencySymbol = cfg.CurrencySymbol

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize DB
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate database: %v", err)
	}

	cutoff, err := mealCutoff(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid meal settings: %v", err)
	}
	svc := services.New(db, cutoff)

	r := router.SetupRouter(svc, cfg)
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		utils.ErrorLogger.Fatalf("Failed to set trusted proxies: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		utils.InfoLogger.Printf("Listening on %s (meal cutoff %s)", cfg.Addr(), cutoff)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	if cfg.Desktop {
		go func() {
			launchCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			defer cancel()
			if err := desktop.NewLauncher(cfg.BaseURL()).Launch(launchCtx); err != nil {
				utils.ErrorLogger.Printf("Desktop launch failed: %v", err)
			}
		}()
	}

	<-ctx.Done()
	utils.InfoLogger.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Printf("Server shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// mealCutoff builds the self-service cutoff from TIMEZONE and MEAL_CUTOFF.
func mealCutoff(cfg *config.Config) (*services.MealCutoff, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", cfg.Timezone, err)
	}
	hour, minute, err := cfg.Cutoff()
	if err != nil {
		return nil, err
	}
	return services.NewMealCutoff(hour, minute, loc), nil
}
