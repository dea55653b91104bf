package main

import (
	"context"
	"log"
	"os"
	"time"

	"welcomecrm/internal/db"
	"welcomecrm/internal/middleware"
	"welcomecrm/internal/pricing"
	"welcomecrm/internal/proposal"
	"welcomecrm/internal/storage"
	"welcomecrm/internal/viewer"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── CORE ─────────────────────────
	proposalRepo := proposal.NewRepository(pgDB)
	engine := pricing.NewEngine(nil)

	viewerService := viewer.NewService(proposalRepo, engine, r2Client)
	viewerHandler := viewer.NewHandler(viewerService)
	proposalHandler := proposal.NewHandler(proposalRepo, r2Client)

	// ───────────────────────── PUBLIC VIEWER ROUTES ─────────────────────────
	public := r.Group("/p")
	{
		public.GET("/:token", viewerHandler.GetProposal())
		public.POST("/:token/accept", viewerHandler.AcceptProposal())
	}

	// ───────────────────────── AGENT ROUTES ─────────────────────────
	proposals := r.Group("/proposals")
	proposals.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole("AGENT", "ADMIN"),
	)
	{
		proposals.GET("/:id/events", proposalHandler.ListEvents())
		proposals.GET("/:id/acceptance", proposalHandler.GetAcceptance())
		proposals.POST("/:id/images", proposalHandler.UploadImages())
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	log.Println("🚀 API running at http://localhost:8000")
	r.Run(":8000")
}
