// file: main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Arainf/0XCTF25/controllers"
	"github.com/Arainf/0XCTF25/database"
	"github.com/Arainf/0XCTF25/routes"
	"github.com/Arainf/0XCTF25/services"
)

func main() {
	database.Connect()

	// 默认不自动迁移，生产环境表结构由 DBA 管理
	if os.Getenv("AUTO_MIGRATE") == "1" {
		database.MigrateTables()
	}

	limit := envInt("THROTTLE_LIMIT", services.DefaultThrottleLimit)
	windowSec := envInt("THROTTLE_WINDOW_SECONDS", int(services.DefaultThrottleWindow/time.Second))
	window := time.Duration(windowSec) * time.Second

	// 限流后端可替换：单实例用进程内计数，多实例切 Redis 共享计数
	var throttle services.Throttle
	if os.Getenv("THROTTLE_BACKEND") == "redis" {
		database.InitRedis()
		throttle = services.NewRedisThrottle(database.RDB, limit, window)
		log.Println("Using redis throttle backend")
	} else {
		throttle = services.NewMemoryThrottle(limit, window)
		log.Println("Using in-memory throttle backend")
	}

	controllers.Setup(
		services.NewSolveService(database.DB, throttle),
		services.NewHintService(database.DB),
		services.NewLeaderboardService(database.DB),
	)

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Println("Starting server on :" + port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	sig := <-stop
	log.Printf("signal received: %v, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	log.Println("server stopped")
}

func envInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
