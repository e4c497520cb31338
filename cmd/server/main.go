package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"echochamber/internal/db"
	"echochamber/internal/game"
	routes "echochamber/internal/http"
	"echochamber/internal/models"
	"echochamber/internal/store"
	"echochamber/internal/ws"
)

func main() {
	// Load .env first; in production the vars are set directly and the
	// file is absent, which is fine.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	// 1. Initialize Database
	database, err := db.Init()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 2. Run Migrations
	log.Println("Running database migrations...")
	if err := database.AutoMigrate(&store.Record{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations complete.")

	st := store.NewGorm(database)

	// 3. Seed the post catalog on first run
	var posts []models.Post
	found, err := st.Load(store.KeyPosts, &posts)
	if err != nil {
		log.Fatalf("Failed to load post catalog: %v", err)
	}
	if !found || len(posts) == 0 {
		if err := st.Save(store.KeyPosts, game.SeedPosts()); err != nil {
			log.Fatalf("Failed to seed post catalog: %v", err)
		}
		log.Println("Seeded default post catalog.")
	}

	// 4. Initialize WebSocket Hub
	hub := ws.NewHub()
	go hub.Run()

	// 5. Initialize Gin Router
	router := gin.New()

	// 6. Setup Routes
	routes.SetupRoutes(router, st, hub)

	// 7. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
